package processing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
)

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	full := newFrame(t,
		frame.IntColumn("unique_id", []int64{1}),
		frame.IntColumn("ds", []int64{1}),
		frame.FloatColumn("y", []float64{1}),
	)
	require.NoError(t, Validate(full, ValidateFull, cfg))

	noTarget := newFrame(t,
		frame.IntColumn("unique_id", []int64{1}),
		frame.IntColumn("ds", []int64{1}),
	)
	require.NoError(t, Validate(noTarget, ValidatePartial, cfg))

	err := Validate(noTarget, ValidateFull, cfg)
	var mce *errs.MissingColumnsError
	require.ErrorAs(t, err, &mce)
	require.Equal(t, []string{"y"}, mce.Columns)

	empty := newFrame(t)
	err = Validate(empty, ValidateFull, cfg)
	require.ErrorAs(t, err, &mce)
	require.Equal(t, []string{"unique_id", "ds", "y"}, mce.Columns)
	require.EqualError(t, err, "missing required columns: [unique_id, ds, y]")

	require.Equal(t, ValidateFull, cfg.Mode, "config untouched")
}

func TestCoerceTime(t *testing.T) {
	ts := []time.Time{time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name string
		col  frame.Column
		want frame.Kind
	}{
		{"time passes", frame.TimeColumn("ds", ts), frame.KindTime},
		{"int passes", frame.IntColumn("ds", []int64{1, 2}), frame.KindInt},
		{"float passes", frame.FloatColumn("ds", []float64{1.5}), frame.KindFloat},
		{"string parsed", frame.StringColumn("ds", []string{"2000-01-01"}), frame.KindTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceTime(tt.col, nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Kind())
			require.Equal(t, "ds", got.Name())
		})
	}

	t.Run("mixed layouts", func(t *testing.T) {
		col := frame.StringColumn("ds", []string{
			"2000-01-01",
			"2000-01-02 03:04:05",
			"2000-01-03T00:00:00.5Z",
			"2000-01-04",
		})
		got, err := CoerceTime(col, DefaultTimeLayouts)
		require.NoError(t, err)
		require.Equal(t, time.Date(2000, 1, 2, 3, 4, 5, 0, time.UTC), got.Times()[1])
		require.Equal(t, 500*time.Millisecond, got.Times()[2].Sub(time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("custom layout", func(t *testing.T) {
		col := frame.StringColumn("ds", []string{"01/02/2000"})
		_, err := CoerceTime(col, nil)
		require.ErrorIs(t, err, errs.ErrTimeParse)

		got, err := CoerceTime(col, []string{"01/02/2006"})
		require.NoError(t, err)
		require.Equal(t, time.January, got.Times()[0].Month())
		require.Equal(t, 2, got.Times()[0].Day())
	})

	t.Run("parse error wraps cause", func(t *testing.T) {
		_, err := CoerceTime(frame.StringColumn("ds", []string{"x"}), nil)
		var tpe *errs.TimeParseError
		require.ErrorAs(t, err, &tpe)
		require.Equal(t, "ds", tpe.Column)
		require.Equal(t, 0, tpe.Row)
		require.Error(t, tpe.Unwrap())
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := CoerceTime(frame.Column{}, nil)
		require.ErrorIs(t, err, errs.ErrColumnType)
	})
}

func TestCoerceIDs(t *testing.T) {
	got := CoerceIDs(frame.StringColumn("id", []string{"1", "-2", "30"}))
	require.Equal(t, frame.KindInt, got.Kind())
	require.Equal(t, []int64{1, -2, 30}, got.Ints())

	// float-looking and mixed ids stay strings
	for _, vals := range [][]string{{"1.0", "2"}, {"1", "a"}, {""}} {
		col := frame.StringColumn("id", vals)
		require.Equal(t, frame.KindString, CoerceIDs(col).Kind())
	}

	ints := frame.IntColumn("id", []int64{3})
	require.Equal(t, ints, CoerceIDs(ints))
}

func TestEnsureSorted(t *testing.T) {
	sorted := sortedPanel(t)
	out, err := EnsureSorted(sorted, "unique_id", "ds")
	require.NoError(t, err)
	require.Same(t, sorted, out.(*frame.Frame))

	out, err = EnsureSorted(unsortedPanel(t), "unique_id", "ds")
	require.NoError(t, err)
	ok, err := IsSorted(out, "unique_id", "ds")
	require.NoError(t, err)
	require.True(t, ok)

	again, err := EnsureSorted(out, "unique_id", "ds")
	require.NoError(t, err)
	require.Same(t, out.(*frame.Frame), again.(*frame.Frame))

	_, err = IsSorted(sorted, "unique_id", "missing")
	require.ErrorIs(t, err, errs.ErrMissingColumns)
}

func TestValueMatrix(t *testing.T) {
	in := newFrame(t,
		frame.IntColumn("a", []int64{1, 2}),
		frame.FloatColumn("b", []float64{0.5, 1.5}),
		frame.StringColumn("s", []string{"x", "y"}),
	)

	m, err := ValueMatrix(in, []string{"b", "a"})
	require.NoError(t, err)
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	require.Equal(t, []float64{0.5, 1, 1.5, 2}, flatten(m))

	m, err = ValueMatrix(in, []string{"a"})
	require.NoError(t, err)
	r, c = m.Dims()
	require.Equal(t, []int{2, 1}, []int{r, c})

	m, err = ValueMatrix(in, nil)
	require.NoError(t, err)
	require.True(t, m.IsEmpty())
	require.Nil(t, flatten(m))

	_, err = ValueMatrix(in, []string{"s"})
	require.ErrorIs(t, err, errs.ErrColumnType)

	_, err = ValueMatrix(in, []string{"a", "nope"})
	require.ErrorIs(t, err, errs.ErrMissingColumns)
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, []string{"y"}, cfg.Values())
	cfg.Mode = ValidatePartial
	require.Empty(t, cfg.Values())
	require.Equal(t, []string{"unique_id", "ds"}, cfg.Required())
	require.Equal(t, "partial", cfg.Mode.String())

	_, err := Process(sortedPanel(t), WithMode(Mode(9)))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	_, err = Process(sortedPanel(t), WithTimeLayouts())
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}
