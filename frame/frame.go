package frame

import (
	"fmt"
	"slices"

	"github.com/marcozanotti/utilsforecast/errs"
)

// Frame is an in-memory columnar table of equally long Columns.
type Frame struct {
	cols   []Column
	byName map[string]int
	rows   int
}

var _ Source = (*Frame)(nil)

// New creates a Frame from columns of equal length.
//
// Returns ErrColumnLength if lengths differ and ErrDuplicateColumn if two
// columns share a name.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{
		cols:   slices.Clone(cols),
		byName: make(map[string]int, len(cols)),
	}

	for i, c := range cols {
		if c.Kind() == KindInvalid {
			return nil, fmt.Errorf("%w: column %q has no kind", errs.ErrColumnType, c.Name())
		}
		if _, ok := f.byName[c.Name()]; ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, c.Name())
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				errs.ErrColumnLength, c.Name(), c.Len(), f.rows)
		}
		f.byName[c.Name()] = i
	}

	return f, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}

	return names
}

// Column returns the named column.
func (f *Frame) Column(name string) (Column, error) {
	i, ok := f.byName[name]
	if !ok {
		return Column{}, &errs.MissingColumnsError{Columns: []string{name}}
	}

	return f.cols[i], nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.rows
}

// WithColumns returns a new Frame with cols replacing same-named columns or
// appended. The receiver is not modified.
func (f *Frame) WithColumns(cols ...Column) (Source, error) {
	out := slices.Clone(f.cols)
	for _, c := range cols {
		if i, ok := f.byName[c.Name()]; ok {
			out[i] = c
		} else {
			out = append(out, c)
		}
	}

	return New(out...)
}

// SortBy returns a new Frame with rows stably sorted by the named columns.
func (f *Frame) SortBy(keys ...string) (Source, error) {
	keyCols := make([]Column, 0, len(keys))
	var missing []string
	for _, k := range keys {
		c, err := f.Column(k)
		if err != nil {
			missing = append(missing, k)
			continue
		}
		keyCols = append(keyCols, c)
	}
	if len(missing) > 0 {
		return nil, &errs.MissingColumnsError{Columns: missing}
	}

	perm := SortPermutation(keyCols...)
	sorted := make([]Column, len(f.cols))
	for i, c := range f.cols {
		sorted[i] = c.Take(perm)
	}

	return New(sorted...)
}
