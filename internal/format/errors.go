package format

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lindeneg/litescan/internal/dbfile"
)

// errf builds a format error rooted at dbfile.ErrFormat, annotated with a
// context message.
func errf(format string, args ...any) error {
	return errors.Wrap(dbfile.ErrFormat, fmt.Sprintf(format, args...))
}
