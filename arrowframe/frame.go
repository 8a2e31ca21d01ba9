// Package arrowframe adapts an Apache Arrow record to the frame.Source
// interface, so Arrow-backed tables can be normalized without first being
// copied into a frame.Frame.
//
// Columns are converted to frame.Column on read:
//   - signed and unsigned integers → Int (Float when the array has nulls, nulls become NaN)
//   - float32/float64 → Float, nulls become NaN
//   - utf8, large utf8 and dictionary-of-utf8 → String
//   - timestamp, date32, date64 → Time (UTC)
//
// Nulls in String or Time columns, and uint64 values above math.MaxInt64,
// are rejected with errs.ErrColumnType.
//
// Frames are reference counted like the records they wrap: every Frame
// returned by New, FromColumns, WithColumns or SortBy must be released.
package arrowframe

import (
	"fmt"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
	"github.com/marcozanotti/utilsforecast/internal/options"
)

// Frame is a frame.Source over an arrow.Record.
type Frame struct {
	rec arrow.Record
	mem memory.Allocator
}

var _ frame.Source = (*Frame)(nil)

// Option configures a Frame.
type Option = options.Option[*Frame]

// WithAllocator sets the allocator used for arrays built by WithColumns and SortBy.
func WithAllocator(mem memory.Allocator) Option {
	return options.New(func(f *Frame) error {
		if mem == nil {
			return fmt.Errorf("%w: nil allocator", errs.ErrInvalidOption)
		}
		f.mem = mem

		return nil
	})
}

// New wraps rec. The Frame retains the record; callers keep their own
// reference and must still release it.
func New(rec arrow.Record, opts ...Option) (*Frame, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil arrow record", errs.ErrUnsupportedSource)
	}

	f := &Frame{mem: memory.DefaultAllocator}
	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	rec.Retain()
	f.rec = rec

	return f, nil
}

// FromColumns builds an Arrow-backed Frame from columns of equal length.
func FromColumns(mem memory.Allocator, cols ...frame.Column) (*Frame, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	rec, err := buildRecord(mem, cols)
	if err != nil {
		return nil, err
	}

	return &Frame{rec: rec, mem: mem}, nil
}

// Record returns the wrapped record without retaining it.
func (f *Frame) Record() arrow.Record {
	return f.rec
}

// Release drops the Frame's reference to its record.
func (f *Frame) Release() {
	if f.rec != nil {
		f.rec.Release()
		f.rec = nil
	}
}

// Columns returns the field names of the record schema.
func (f *Frame) Columns() []string {
	fields := f.rec.Schema().Fields()
	names := make([]string, len(fields))
	for i, fld := range fields {
		names[i] = fld.Name
	}

	return names
}

// Column converts the named Arrow column to a frame.Column.
func (f *Frame) Column(name string) (frame.Column, error) {
	idx := f.rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return frame.Column{}, &errs.MissingColumnsError{Columns: []string{name}}
	}

	return toColumn(name, f.rec.Column(idx[0]))
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return int(f.rec.NumRows())
}

// WithColumns returns a new Frame in which cols replace same-named fields or
// are appended. Untouched fields share their arrays with the receiver.
func (f *Frame) WithColumns(cols ...frame.Column) (frame.Source, error) {
	fields := slices.Clone(f.rec.Schema().Fields())
	arrs := slices.Clone(f.rec.Columns())
	owned := make([]arrow.Array, 0, len(cols))
	defer func() {
		for _, a := range owned {
			a.Release()
		}
	}()

	for _, c := range cols {
		if c.Len() != f.Len() {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				errs.ErrColumnLength, c.Name(), c.Len(), f.Len())
		}

		arr, err := fromColumn(f.mem, c)
		if err != nil {
			return nil, err
		}
		owned = append(owned, arr)

		field := arrow.Field{Name: c.Name(), Type: arr.DataType(), Nullable: false}
		if idx := f.rec.Schema().FieldIndices(c.Name()); len(idx) > 0 {
			fields[idx[0]] = field
			arrs[idx[0]] = arr
		} else {
			fields = append(fields, field)
			arrs = append(arrs, arr)
		}
	}

	// NewRecord retains every array, so the deferred releases only drop ours.
	rec := array.NewRecord(arrow.NewSchema(fields, nil), arrs, f.rec.NumRows())

	return &Frame{rec: rec, mem: f.mem}, nil
}

// SortBy returns a new Frame with rows stably sorted by the named columns.
//
// Every column of the result is rebuilt in its canonical Arrow type (int64,
// float64, utf8 or timestamp[ns, UTC]).
func (f *Frame) SortBy(keys ...string) (frame.Source, error) {
	keyCols := make([]frame.Column, 0, len(keys))
	var missing []string
	for _, k := range keys {
		c, err := f.Column(k)
		if err != nil {
			if len(frame.MissingColumns(f, k)) > 0 {
				missing = append(missing, k)
				continue
			}

			return nil, err
		}
		keyCols = append(keyCols, c)
	}
	if len(missing) > 0 {
		return nil, &errs.MissingColumnsError{Columns: missing}
	}

	perm := frame.SortPermutation(keyCols...)
	names := f.Columns()
	sorted := make([]frame.Column, len(names))
	for i, name := range names {
		c, err := toColumn(name, f.rec.Column(i))
		if err != nil {
			return nil, err
		}
		sorted[i] = c.Take(perm)
	}

	return FromColumns(f.mem, sorted...)
}
