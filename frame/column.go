package frame

import (
	"cmp"
	"fmt"
	"strconv"
	"time"

	"github.com/marcozanotti/utilsforecast/errs"
)

// Kind identifies the element type of a Column.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt          // int64 values
	KindFloat        // float64 values
	KindString       // string values
	KindTime         // time.Time values
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindTime:
		return "Time"
	default:
		return "Invalid"
	}
}

// IsNumeric reports whether the kind holds integer or floating-point values.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// Column is an immutable, named, typed column.
//
// Exactly one of the backing slices is set, according to Kind. Constructors
// take ownership of the given slice; callers must not modify it afterwards,
// and must not modify the slices returned by the accessors.
type Column struct {
	name   string
	kind   Kind
	ints   []int64
	floats []float64
	strs   []string
	times  []time.Time
}

// IntColumn creates an integer column.
func IntColumn(name string, values []int64) Column {
	return Column{name: name, kind: KindInt, ints: values}
}

// FloatColumn creates a floating-point column.
func FloatColumn(name string, values []float64) Column {
	return Column{name: name, kind: KindFloat, floats: values}
}

// StringColumn creates a string column.
func StringColumn(name string, values []string) Column {
	return Column{name: name, kind: KindString, strs: values}
}

// TimeColumn creates a temporal column.
func TimeColumn(name string, values []time.Time) Column {
	return Column{name: name, kind: KindTime, times: values}
}

// Name returns the column name.
func (c Column) Name() string {
	return c.name
}

// Kind returns the element type of the column.
func (c Column) Kind() Kind {
	return c.kind
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.kind {
	case KindInt:
		return len(c.ints)
	case KindFloat:
		return len(c.floats)
	case KindString:
		return len(c.strs)
	case KindTime:
		return len(c.times)
	default:
		return 0
	}
}

// Ints returns the values of an Int column, nil otherwise.
func (c Column) Ints() []int64 {
	return c.ints
}

// Floats returns the values of a Float column, nil otherwise.
func (c Column) Floats() []float64 {
	return c.floats
}

// Strings returns the values of a String column, nil otherwise.
func (c Column) Strings() []string {
	return c.strs
}

// Times returns the values of a Time column, nil otherwise.
func (c Column) Times() []time.Time {
	return c.times
}

// Float64s returns a copy of a numeric column converted to float64.
func (c Column) Float64s() ([]float64, error) {
	switch c.kind {
	case KindFloat:
		out := make([]float64, len(c.floats))
		copy(out, c.floats)

		return out, nil
	case KindInt:
		out := make([]float64, len(c.ints))
		for i, v := range c.ints {
			out[i] = float64(v)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: column %q is %s, expected a numeric column", errs.ErrColumnType, c.name, c.kind)
	}
}

// Compare compares the values at rows i and j, returning -1, 0 or +1.
// NaN floats order before every other value.
func (c Column) Compare(i, j int) int {
	switch c.kind {
	case KindInt:
		return cmp.Compare(c.ints[i], c.ints[j])
	case KindFloat:
		return cmp.Compare(c.floats[i], c.floats[j])
	case KindString:
		return cmp.Compare(c.strs[i], c.strs[j])
	case KindTime:
		return c.times[i].Compare(c.times[j])
	default:
		return 0
	}
}

// Format returns the value at row i as a string.
func (c Column) Format(i int) string {
	switch c.kind {
	case KindInt:
		return strconv.FormatInt(c.ints[i], 10)
	case KindFloat:
		return strconv.FormatFloat(c.floats[i], 'g', -1, 64)
	case KindString:
		return c.strs[i]
	case KindTime:
		return c.times[i].Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// Take returns a new column holding the rows at idxs, in order.
func (c Column) Take(idxs []int) Column {
	out := Column{name: c.name, kind: c.kind}
	switch c.kind {
	case KindInt:
		out.ints = gather(c.ints, idxs)
	case KindFloat:
		out.floats = gather(c.floats, idxs)
	case KindString:
		out.strs = gather(c.strs, idxs)
	case KindTime:
		out.times = gather(c.times, idxs)
	}

	return out
}

func gather[T any](src []T, idxs []int) []T {
	out := make([]T, len(idxs))
	for k, i := range idxs {
		out[k] = src[i]
	}

	return out
}
