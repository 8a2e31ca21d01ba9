package arrowframe

import (
	"fmt"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
)

// timestampType is the canonical Arrow type of Time columns.
var timestampType = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type valueArray[T any] interface {
	arrow.Array
	Value(i int) T
}

func toColumn(name string, arr arrow.Array) (frame.Column, error) {
	switch a := arr.(type) {
	case *array.Int8:
		return intColumn[int8](name, a), nil
	case *array.Int16:
		return intColumn[int16](name, a), nil
	case *array.Int32:
		return intColumn[int32](name, a), nil
	case *array.Int64:
		return intColumn[int64](name, a), nil
	case *array.Uint8:
		return intColumn[uint8](name, a), nil
	case *array.Uint16:
		return intColumn[uint16](name, a), nil
	case *array.Uint32:
		return intColumn[uint32](name, a), nil
	case *array.Uint64:
		return uint64Column(name, a)
	case *array.Float32:
		return frame.FloatColumn(name, floats[float32](a)), nil
	case *array.Float64:
		return frame.FloatColumn(name, floats[float64](a)), nil
	case *array.String:
		return stringColumn[string](name, a)
	case *array.LargeString:
		return stringColumn[string](name, a)
	case *array.Dictionary:
		return dictionaryColumn(name, a)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return timeColumn(name, a, func(i int) time.Time { return a.Value(i).ToTime(unit) })
	case *array.Date32:
		return timeColumn(name, a, func(i int) time.Time { return a.Value(i).ToTime() })
	case *array.Date64:
		return timeColumn(name, a, func(i int) time.Time { return a.Value(i).ToTime() })
	default:
		return frame.Column{}, fmt.Errorf("%w: column %q has unsupported arrow type %s",
			errs.ErrColumnType, name, arr.DataType())
	}
}

func intColumn[T integer](name string, a valueArray[T]) frame.Column {
	if a.NullN() > 0 {
		return frame.FloatColumn(name, floats[T](a))
	}

	out := make([]int64, a.Len())
	for i := range out {
		out[i] = int64(a.Value(i))
	}

	return frame.IntColumn(name, out)
}

// uint64Column rejects values above math.MaxInt64, which have no exact
// Int or Float representation.
func uint64Column(name string, a *array.Uint64) (frame.Column, error) {
	for i := range a.Len() {
		if a.IsValid(i) && a.Value(i) > math.MaxInt64 {
			return frame.Column{}, fmt.Errorf("%w: column %q row %d holds uint64 %d above the int64 range",
				errs.ErrColumnType, name, i, a.Value(i))
		}
	}

	return intColumn[uint64](name, a), nil
}

func floats[T integer | ~float32 | ~float64](a valueArray[T]) []float64 {
	out := make([]float64, a.Len())
	for i := range out {
		if a.IsNull(i) {
			out[i] = math.NaN()
			continue
		}
		out[i] = float64(a.Value(i))
	}

	return out
}

func stringColumn[T ~string](name string, a valueArray[T]) (frame.Column, error) {
	if a.NullN() > 0 {
		return frame.Column{}, nullError(name, a)
	}

	out := make([]string, a.Len())
	for i := range out {
		out[i] = string(a.Value(i))
	}

	return frame.StringColumn(name, out), nil
}

func dictionaryColumn(name string, a *array.Dictionary) (frame.Column, error) {
	if a.NullN() > 0 {
		return frame.Column{}, nullError(name, a)
	}

	var value func(int) string
	switch d := a.Dictionary().(type) {
	case *array.String:
		value = d.Value
	case *array.LargeString:
		value = d.Value
	default:
		return frame.Column{}, fmt.Errorf("%w: column %q has dictionary values of type %s",
			errs.ErrColumnType, name, d.DataType())
	}

	out := make([]string, a.Len())
	for i := range out {
		out[i] = value(a.GetValueIndex(i))
	}

	return frame.StringColumn(name, out), nil
}

func timeColumn(name string, a arrow.Array, value func(int) time.Time) (frame.Column, error) {
	if a.NullN() > 0 {
		return frame.Column{}, nullError(name, a)
	}

	out := make([]time.Time, a.Len())
	for i := range out {
		out[i] = value(i)
	}

	return frame.TimeColumn(name, out), nil
}

func nullError(name string, a arrow.Array) error {
	return fmt.Errorf("%w: column %q of type %s has %d null values",
		errs.ErrColumnType, name, a.DataType(), a.NullN())
}

// fromColumn builds an Arrow array of the column's canonical type.
// The caller owns the returned array.
func fromColumn(mem memory.Allocator, c frame.Column) (arrow.Array, error) {
	switch c.Kind() {
	case frame.KindInt:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(c.Ints(), nil)

		return b.NewArray(), nil
	case frame.KindFloat:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(c.Floats(), nil)

		return b.NewArray(), nil
	case frame.KindString:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(c.Strings(), nil)

		return b.NewArray(), nil
	case frame.KindTime:
		b := array.NewTimestampBuilder(mem, timestampType)
		defer b.Release()
		b.Reserve(c.Len())
		for _, t := range c.Times() {
			b.UnsafeAppend(arrow.Timestamp(t.UnixNano()))
		}

		return b.NewArray(), nil
	default:
		return nil, fmt.Errorf("%w: column %q has no kind", errs.ErrColumnType, c.Name())
	}
}

func buildRecord(mem memory.Allocator, cols []frame.Column) (arrow.Record, error) {
	if _, err := frame.New(cols...); err != nil {
		return nil, err
	}

	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Len()
	}

	fields := make([]arrow.Field, len(cols))
	arrs := make([]arrow.Array, 0, len(cols))
	defer func() {
		for _, a := range arrs {
			a.Release()
		}
	}()

	for i, c := range cols {
		arr, err := fromColumn(mem, c)
		if err != nil {
			return nil, err
		}
		arrs = append(arrs, arr)
		fields[i] = arrow.Field{Name: c.Name(), Type: arr.DataType()}
	}

	return array.NewRecord(arrow.NewSchema(fields, nil), arrs, int64(rows)), nil
}
