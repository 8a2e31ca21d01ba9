package grouped

import "slices"

// View is a borrowed, read-only window over consecutive rows of an Array.
//
// The underlying slice is capacity-capped, so appending to a slice obtained
// from a View never writes into a neighbouring group. Callers must not write
// through the slices returned by Values or Row.
type View[T Number] struct {
	data []T
	rows int
	cols int
}

// Len returns the number of rows in the view.
func (v View[T]) Len() int {
	return v.rows
}

// Cols returns the number of values per row.
func (v View[T]) Cols() int {
	return v.cols
}

// Values returns the view's rows as one flat row-major slice.
func (v View[T]) Values() []T {
	return v.data
}

// Row returns row j of the view. It panics if j is out of range, like slice indexing.
func (v View[T]) Row(j int) []T {
	if j < 0 || j >= v.rows {
		panic("grouped: row index out of range")
	}
	lo, hi := j*v.cols, (j+1)*v.cols

	return v.data[lo:hi:hi]
}

// At returns the value at row j, column c.
func (v View[T]) At(j, c int) T {
	if c < 0 || c >= v.cols {
		panic("grouped: column index out of range")
	}

	return v.Row(j)[c]
}

// Column returns a copy of column c across all rows of the view.
func (v View[T]) Column(c int) []T {
	if c < 0 || c >= v.cols {
		panic("grouped: column index out of range")
	}

	out := make([]T, v.rows)
	for j := range v.rows {
		out[j] = v.data[j*v.cols+c]
	}

	return out
}

// Matrix returns an owned copy of the view as one slice per row.
func (v View[T]) Matrix() [][]T {
	out := make([][]T, v.rows)
	for j := range v.rows {
		out[j] = slices.Clone(v.Row(j))
	}

	return out
}
