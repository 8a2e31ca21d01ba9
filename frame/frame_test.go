package frame

import (
	"math"
	"testing"
	"time"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2000, 1, d, 0, 0, 0, 0, time.UTC)
}

func unsortedFrame(t *testing.T) *Frame {
	t.Helper()

	f, err := New(
		IntColumn("unique_id", []int64{2, 1, 1}),
		TimeColumn("ds", []time.Time{day(1), day(2), day(1)}),
		FloatColumn("y", []float64{20, 11, 10}),
	)
	require.NoError(t, err)

	return f
}

func TestNew(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := unsortedFrame(t)
		require.Equal(t, 3, f.Len())
		require.Equal(t, []string{"unique_id", "ds", "y"}, f.Columns())
	})

	t.Run("no columns", func(t *testing.T) {
		f, err := New()
		require.NoError(t, err)
		require.Equal(t, 0, f.Len())
		require.Empty(t, f.Columns())
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := New(IntColumn("a", []int64{1}), IntColumn("b", []int64{1, 2}))
		require.ErrorIs(t, err, errs.ErrColumnLength)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := New(IntColumn("a", []int64{1}), FloatColumn("a", []float64{1}))
		require.ErrorIs(t, err, errs.ErrDuplicateColumn)
	})

	t.Run("zero value column", func(t *testing.T) {
		_, err := New(Column{})
		require.ErrorIs(t, err, errs.ErrColumnType)
	})
}

func TestColumn(t *testing.T) {
	f := unsortedFrame(t)

	y, err := f.Column("y")
	require.NoError(t, err)
	require.Equal(t, KindFloat, y.Kind())
	require.Equal(t, []float64{20, 11, 10}, y.Floats())

	_, err = f.Column("missing")
	require.ErrorIs(t, err, errs.ErrMissingColumns)

	require.Equal(t, []string{"x", "z"}, MissingColumns(f, "x", "y", "z"))
	require.Empty(t, MissingColumns(f, "ds"))
}

func TestWithColumns(t *testing.T) {
	f := unsortedFrame(t)

	out, err := f.WithColumns(
		FloatColumn("y", []float64{1, 2, 3}),
		StringColumn("tag", []string{"a", "b", "c"}),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"unique_id", "ds", "y", "tag"}, out.Columns())

	y, err := out.Column("y")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, y.Floats())

	// receiver untouched
	orig, err := f.Column("y")
	require.NoError(t, err)
	require.Equal(t, []float64{20, 11, 10}, orig.Floats())
	require.Equal(t, []string{"unique_id", "ds", "y"}, f.Columns())

	_, err = f.WithColumns(IntColumn("short", []int64{1}))
	require.ErrorIs(t, err, errs.ErrColumnLength)
}

func TestSortBy(t *testing.T) {
	f := unsortedFrame(t)

	sorted, err := f.SortBy("unique_id", "ds")
	require.NoError(t, err)

	ids, err := sorted.Column("unique_id")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 1, 2}, ids.Ints())

	y, err := sorted.Column("y")
	require.NoError(t, err)
	require.Equal(t, []float64{10, 11, 20}, y.Floats())

	ds, err := sorted.Column("ds")
	require.NoError(t, err)
	require.True(t, IsSortedBy(ids, ds))

	// input untouched
	origIDs, err := f.Column("unique_id")
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1, 1}, origIDs.Ints())

	_, err = f.SortBy("unique_id", "nope")
	require.ErrorIs(t, err, errs.ErrMissingColumns)
}

func TestSortPermutation_Stable(t *testing.T) {
	keys := StringColumn("k", []string{"b", "a", "b", "a"})
	times := IntColumn("t", []int64{1, 1, 1, 1})

	require.Equal(t, []int{1, 3, 0, 2}, SortPermutation(keys, times))
	require.Empty(t, SortPermutation())
}

func TestIsSortedBy(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
		want bool
	}{
		{"no columns", nil, true},
		{"empty", []Column{IntColumn("a", nil)}, true},
		{"sorted composite", []Column{IntColumn("a", []int64{1, 1, 2}), IntColumn("b", []int64{1, 2, 0})}, true},
		{"ties allowed", []Column{StringColumn("a", []string{"x", "x"}), IntColumn("b", []int64{3, 3})}, true},
		{"unsorted secondary", []Column{IntColumn("a", []int64{1, 1}), IntColumn("b", []int64{2, 1})}, false},
		{"unsorted primary", []Column{StringColumn("a", []string{"b", "a"})}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsSortedBy(tt.cols...))
		})
	}
}

func TestColumnConversions(t *testing.T) {
	ints := IntColumn("i", []int64{1, 2})
	vals, err := ints.Float64s()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, vals)
	require.True(t, ints.Kind().IsNumeric())

	_, err = StringColumn("s", []string{"a"}).Float64s()
	require.ErrorIs(t, err, errs.ErrColumnType)

	require.Equal(t, "2000-01-03T00:00:00Z", TimeColumn("t", []time.Time{day(3)}).Format(0))
	require.Equal(t, "1.5", FloatColumn("f", []float64{1.5}).Format(0))
	require.Equal(t, "i", ints.Name())

	nan := FloatColumn("f", []float64{1, math.NaN()})
	require.Equal(t, 1, nan.Compare(0, 1))
}
