package processing

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/marcozanotti/utilsforecast/arrowframe"
	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
)

// AsSource returns v as a frame.Source.
//
// Supported inputs are *frame.Frame, *arrowframe.Frame and arrow.Record. A
// record is wrapped in a new arrowframe.Frame that the caller should release
// through the returned release function; for the other inputs release is a
// no-op.
func AsSource(v any) (src frame.Source, release func(), err error) {
	noop := func() {}

	switch s := v.(type) {
	case *frame.Frame:
		if s == nil {
			break
		}
		return s, noop, nil
	case *arrowframe.Frame:
		if s == nil || s.Record() == nil {
			break
		}
		return s, noop, nil
	case arrow.Record:
		f, err := arrowframe.New(s)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Release, nil
	}

	return nil, nil, fmt.Errorf("%w: %T", errs.ErrUnsupportedSource, v)
}
