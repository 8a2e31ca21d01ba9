package processing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
)

// ValueMatrix copies cols of src into an N x len(cols) float64 matrix.
//
// A source with no rows or an empty cols list yields an empty *mat.Dense
// (mat.Dense cannot have a zero dimension); use Rows to get the logical shape.
func ValueMatrix(src frame.Source, cols []string) (*mat.Dense, error) {
	if missing := frame.MissingColumns(src, cols...); len(missing) > 0 {
		return nil, &errs.MissingColumnsError{Columns: missing}
	}

	n, k := src.Len(), len(cols)
	if n == 0 || k == 0 {
		return &mat.Dense{}, nil
	}

	m := mat.NewDense(n, k, nil)
	for j, name := range cols {
		col, err := src.Column(name)
		if err != nil {
			return nil, err
		}
		vals, err := col.Float64s()
		if err != nil {
			return nil, err
		}
		m.SetCol(j, vals)
	}

	return m, nil
}

// flatten returns the row-major backing data of m, which is exactly the
// layout grouped.Array stores.
func flatten(m *mat.Dense) []float64 {
	if m.IsEmpty() {
		return nil
	}

	raw := m.RawMatrix()
	r, c := m.Dims()
	if raw.Stride == c {
		return raw.Data[:r*c]
	}

	out := make([]float64, 0, r*c)
	for i := range r {
		out = append(out, m.RawRowView(i)...)
	}

	return out
}
