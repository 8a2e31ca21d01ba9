package grouped

import (
	"fmt"
	"iter"
	"slices"

	"github.com/marcozanotti/utilsforecast/errs"
)

// Number is the set of element types a ragged Array can hold.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Array stores many variable-length series in one flat row-major buffer.
//
// Group i occupies rows [indptr[i], indptr[i+1]) of the buffer, and every row
// holds exactly Cols() values. The layout invariants are:
//   - indptr[0] == 0 and indptr is non-decreasing
//   - indptr[Len()] == Rows()
//   - len(data) == Rows() * Cols()
//
// Empty groups (indptr[i] == indptr[i+1]) are valid.
//
// An Array is not safe for concurrent mutation. Concurrent readers are safe
// as long as no goroutine calls AppendOne or AppendSeveral.
type Array[T Number] struct {
	data   []T
	cols   int
	indptr []int
}

// New creates an Array from a flat row-major buffer and a boundary index.
//
// The Array takes ownership of data and indptr; the caller must not modify
// either slice afterwards.
//
// Parameters:
//   - data: Row-major values, len(data) must equal indptr[len(indptr)-1] * cols
//   - cols: Number of values per row (may be 0)
//   - indptr: Cumulative boundary index of length groups+1
//
// Returns:
//   - *Array[T]: The constructed array
//   - error: ErrInvalidBoundaries or ErrDimensionMismatch if the layout is inconsistent
func New[T Number](data []T, cols int, indptr []int) (*Array[T], error) {
	if cols < 0 {
		return nil, fmt.Errorf("%w: negative column count %d", errs.ErrDimensionMismatch, cols)
	}

	if err := validateIndptr(indptr); err != nil {
		return nil, err
	}

	rows := indptr[len(indptr)-1]
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: data holds %d values, expected %d rows x %d cols",
			errs.ErrDimensionMismatch, len(data), rows, cols)
	}

	return &Array[T]{data: data, cols: cols, indptr: indptr}, nil
}

// FromSizes creates an Array from a flat buffer and per-group row counts.
func FromSizes[T Number](data []T, cols int, sizes []int) (*Array[T], error) {
	indptr, err := IndptrFromSizes(sizes)
	if err != nil {
		return nil, err
	}

	return New(data, cols, indptr)
}

// Empty returns an Array with no groups and the given column count.
func Empty[T Number](cols int) *Array[T] {
	return &Array[T]{cols: cols, indptr: []int{0}}
}

// Len returns the number of groups.
func (a *Array[T]) Len() int {
	return len(a.indptr) - 1
}

// Rows returns the total number of rows across all groups.
func (a *Array[T]) Rows() int {
	return a.indptr[len(a.indptr)-1]
}

// Cols returns the number of values per row.
func (a *Array[T]) Cols() int {
	return a.cols
}

// GroupSize returns the number of rows of group i.
func (a *Array[T]) GroupSize(i int) (int, error) {
	if err := a.checkGroup(i); err != nil {
		return 0, err
	}

	return a.indptr[i+1] - a.indptr[i], nil
}

// Sizes returns the row count of every group.
func (a *Array[T]) Sizes() []int {
	return Sizes(a.indptr)
}

// Indptr returns a copy of the boundary index.
func (a *Array[T]) Indptr() []int {
	return slices.Clone(a.indptr)
}

// Group returns a borrowed view of the rows of group i.
//
// The view aliases the array's buffer. It stays readable after a later
// AppendOne or AppendSeveral but no longer reflects the array: treat views as
// invalidated by any append.
//
// This is an O(1) operation.
func (a *Array[T]) Group(i int) (View[T], error) {
	if err := a.checkGroup(i); err != nil {
		return View[T]{}, err
	}

	return a.view(a.indptr[i], a.indptr[i+1]), nil
}

// TakeRange returns a borrowed view of rows [start, end) of group i, where
// offsets are relative to the group's first row.
//
// Returns ErrInvalidRange if start > end, checked first, and
// ErrIndexOutOfRange if the group index is invalid or the range falls
// outside the group.
func (a *Array[T]) TakeRange(i, start, end int) (View[T], error) {
	if start > end {
		return View[T]{}, fmt.Errorf("%w: start offset %d is after end offset %d", errs.ErrInvalidRange, start, end)
	}

	if err := a.checkGroup(i); err != nil {
		return View[T]{}, err
	}

	size := a.indptr[i+1] - a.indptr[i]
	if start < 0 || end > size {
		return View[T]{}, fmt.Errorf("%w: range [%d, %d) outside group %d of size %d",
			errs.ErrIndexOutOfRange, start, end, i, size)
	}

	base := a.indptr[i]

	return a.view(base+start, base+end), nil
}

// Take builds a new Array holding the selected groups in the given order.
//
// Indices may repeat; each repetition copies the group's rows again. The
// result owns its buffer, so it is unaffected by later appends to a.
//
// This is O(total selected rows).
func (a *Array[T]) Take(idxs []int) (*Array[T], error) {
	total := 0
	for _, i := range idxs {
		if err := a.checkGroup(i); err != nil {
			return nil, err
		}
		total += a.indptr[i+1] - a.indptr[i]
	}

	data := make([]T, 0, total*a.cols)
	indptr := make([]int, len(idxs)+1)
	for k, i := range idxs {
		data = append(data, a.data[a.indptr[i]*a.cols:a.indptr[i+1]*a.cols]...)
		indptr[k+1] = indptr[k] + a.indptr[i+1] - a.indptr[i]
	}

	return &Array[T]{data: data, cols: a.cols, indptr: indptr}, nil
}

// Tails builds a new Array holding the last n rows of every group.
// Groups with fewer than n rows are copied whole.
func (a *Array[T]) Tails(n int) (*Array[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative tail length %d", errs.ErrInvalidRange, n)
	}

	indptr := make([]int, len(a.indptr))
	for i := range a.Len() {
		indptr[i+1] = indptr[i] + min(n, a.indptr[i+1]-a.indptr[i])
	}

	data := make([]T, 0, indptr[len(indptr)-1]*a.cols)
	for i := range a.Len() {
		end := a.indptr[i+1]
		start := end - (indptr[i+1] - indptr[i])
		data = append(data, a.data[start*a.cols:end*a.cols]...)
	}

	return &Array[T]{data: data, cols: a.cols, indptr: indptr}, nil
}

// AppendOne appends a single row to the last group, in place.
//
// Growth is amortized O(1). Views obtained before the call keep their old
// content; the appended row is only visible through new views.
//
// Returns ErrIndexOutOfRange if the array has no groups, and
// ErrDimensionMismatch if len(row) != Cols(). On error the array is unchanged.
func (a *Array[T]) AppendOne(row []T) error {
	if a.Len() == 0 {
		return fmt.Errorf("%w: cannot append to the last group of an array with no groups", errs.ErrIndexOutOfRange)
	}

	if len(row) != a.cols {
		return fmt.Errorf("%w: row has %d values, expected %d", errs.ErrDimensionMismatch, len(row), a.cols)
	}

	a.data = append(a.data, row...)
	a.indptr[len(a.indptr)-1]++

	return nil
}

// AppendSeveral inserts new rows right after the existing rows of each
// targeted group, shifting the boundaries of every later group.
//
// Groups absent from rows are untouched. The buffer is rebuilt in a single
// pass: new sizes and boundaries are computed first, then every group's old
// and new rows are copied once into a correctly sized destination, for a
// total cost of O(Rows() + new rows).
//
// All inputs are validated before anything is modified, so on error the
// array is unchanged. Views obtained before a successful call keep the old
// content and must be re-fetched.
func (a *Array[T]) AppendSeveral(rows map[int][][]T) error {
	added := 0
	for g, groupRows := range rows {
		if err := a.checkGroup(g); err != nil {
			return err
		}
		for j, row := range groupRows {
			if len(row) != a.cols {
				return fmt.Errorf("%w: row %d for group %d has %d values, expected %d",
					errs.ErrDimensionMismatch, j, g, len(row), a.cols)
			}
		}
		added += len(groupRows)
	}

	if added == 0 {
		return nil
	}

	n := a.Len()
	indptr := make([]int, n+1)
	for i := range n {
		indptr[i+1] = indptr[i] + a.indptr[i+1] - a.indptr[i] + len(rows[i])
	}

	data := make([]T, indptr[n]*a.cols)
	for i := range n {
		dst := indptr[i] * a.cols
		dst += copy(data[dst:], a.data[a.indptr[i]*a.cols:a.indptr[i+1]*a.cols])
		for _, row := range rows[i] {
			dst += copy(data[dst:], row)
		}
	}

	a.data = data
	a.indptr = indptr

	return nil
}

// All iterates over every group in order, yielding its index and view.
func (a *Array[T]) All() iter.Seq2[int, View[T]] {
	return func(yield func(int, View[T]) bool) {
		for i := range a.Len() {
			if !yield(i, a.view(a.indptr[i], a.indptr[i+1])) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the array.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		data:   slices.Clone(a.data),
		cols:   a.cols,
		indptr: slices.Clone(a.indptr),
	}
}

func (a *Array[T]) checkGroup(i int) error {
	if i < 0 || i >= a.Len() {
		return fmt.Errorf("%w: group %d not in [0, %d)", errs.ErrIndexOutOfRange, i, a.Len())
	}

	return nil
}

// view returns the capacity-capped window over rows [start, end).
func (a *Array[T]) view(start, end int) View[T] {
	lo, hi := start*a.cols, end*a.cols

	return View[T]{data: a.data[lo:hi:hi], rows: end - start, cols: a.cols}
}

func validateIndptr(indptr []int) error {
	if len(indptr) == 0 {
		return fmt.Errorf("%w: boundary index is empty", errs.ErrInvalidBoundaries)
	}

	if indptr[0] != 0 {
		return fmt.Errorf("%w: first boundary is %d, expected 0", errs.ErrInvalidBoundaries, indptr[0])
	}

	for i := 1; i < len(indptr); i++ {
		if indptr[i] < indptr[i-1] {
			return fmt.Errorf("%w: boundary %d (%d) is below boundary %d (%d)",
				errs.ErrInvalidBoundaries, i, indptr[i], i-1, indptr[i-1])
		}
	}

	return nil
}
