package btree

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lindeneg/litescan/internal/dbfile"
)

func errf(format string, args ...any) error {
	return errors.Wrap(dbfile.ErrFormat, fmt.Sprintf(format, args...))
}
