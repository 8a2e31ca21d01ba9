package processing

import (
	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
)

// Validate checks that src has the columns required by mode.
//
// The returned error is a *errs.MissingColumnsError listing the missing
// names in required order (id, time, target).
func Validate(src frame.Source, mode Mode, cfg *Config) error {
	c := *cfg
	c.Mode = mode

	if missing := frame.MissingColumns(src, c.Required()...); len(missing) > 0 {
		return &errs.MissingColumnsError{Columns: missing}
	}

	return nil
}
