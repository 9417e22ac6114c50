package sqlsurface

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lindeneg/litescan/internal/dbfile"
)

func errf(format string, args ...any) error {
	return errors.Wrap(dbfile.ErrQuery, fmt.Sprintf(format, args...))
}
