package processing

import (
	"fmt"
	"strconv"
	"time"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
)

// CoerceTime returns col as a column usable for time ordering.
//
//	Time         -> unchanged
//	Int, Float   -> unchanged (integer time steps)
//	String       -> parsed with layouts, first match wins
//
// A String value that matches no layout fails with a *errs.TimeParseError
// wrapping the error of the last layout tried.
func CoerceTime(col frame.Column, layouts []string) (frame.Column, error) {
	switch kind := col.Kind(); {
	case kind == frame.KindTime || kind.IsNumeric():
		return col, nil
	case kind != frame.KindString:
		return frame.Column{}, fmt.Errorf("%w: time column %q is %s", errs.ErrColumnType, col.Name(), kind)
	}

	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}

	strs := col.Strings()
	out := make([]time.Time, len(strs))
	hint := 0
	for i, s := range strs {
		t, used, err := parseTime(s, layouts, hint)
		if err != nil {
			return frame.Column{}, &errs.TimeParseError{Column: col.Name(), Row: i, Value: s, Err: err}
		}
		out[i] = t
		hint = used
	}

	return frame.TimeColumn(col.Name(), out), nil
}

// parseTime tries layouts[hint] first since a column nearly always uses one layout.
func parseTime(s string, layouts []string, hint int) (time.Time, int, error) {
	if t, err := time.Parse(layouts[hint], s); err == nil {
		return t, hint, nil
	}

	var lastErr error
	for i, layout := range layouts {
		if i == hint {
			continue
		}
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, i, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		_, lastErr = time.Parse(layouts[hint], s)
	}

	return time.Time{}, hint, lastErr
}

// CoerceIDs converts a String id column whose values are all base-10
// integers into an Int column. Any other column is returned unchanged.
func CoerceIDs(col frame.Column) frame.Column {
	if col.Kind() != frame.KindString {
		return col
	}

	strs := col.Strings()
	ints := make([]int64, len(strs))
	for i, s := range strs {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return col
		}
		ints[i] = v
	}

	return frame.IntColumn(col.Name(), ints)
}
