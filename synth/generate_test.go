package synth

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/require"

	"github.com/marcozanotti/utilsforecast/arrowframe"
	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
	"github.com/marcozanotti/utilsforecast/processing"
)

func column(t *testing.T, src frame.Source, name string) frame.Column {
	t.Helper()

	c, err := src.Column(name)
	require.NoError(t, err)

	return c
}

func TestGenerateSeries_Defaults(t *testing.T) {
	src, err := GenerateSeries(5, WithSeed(1))
	require.NoError(t, err)
	require.Equal(t, []string{"unique_id", "ds", "y"}, src.Columns())

	res, err := processing.Process(src, processing.WithSort(false))
	require.NoError(t, err)
	require.Equal(t, 5, res.Array.Len())
	for _, n := range res.Array.Sizes() {
		require.GreaterOrEqual(t, n, 50)
		require.LessOrEqual(t, n, 500)
	}

	ds := column(t, src, "ds").Times()
	require.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), ds[0])
	require.Equal(t, time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), ds[1])

	y := column(t, src, "y").Floats()
	for r, v := range y {
		base := float64(r % 7)
		require.GreaterOrEqual(t, v, base)
		require.Less(t, v, base+0.5)
	}
}

func TestGenerateSeries_Deterministic(t *testing.T) {
	a, err := GenerateSeries(3, WithSeed(42), WithStaticFeatures(2), WithTrend())
	require.NoError(t, err)
	b, err := GenerateSeries(3, WithSeed(42), WithStaticFeatures(2), WithTrend())
	require.NoError(t, err)

	require.Equal(t, column(t, a, "y").Floats(), column(t, b, "y").Floats())
	require.Equal(t, column(t, a, "static_1").Strings(), column(t, b, "static_1").Strings())
}

func TestGenerateSeries_EqualEndsMonthly(t *testing.T) {
	src, err := GenerateSeries(4, WithFreq("M"), WithLengths(3, 6), WithEqualEnds(), WithSeed(7))
	require.NoError(t, err)

	res, err := processing.Process(src)
	require.NoError(t, err)

	want := time.Date(2000, 6, 30, 0, 0, 0, 0, time.UTC)
	for _, last := range res.LastTimes.Times() {
		require.Equal(t, want, last)
	}

	ds := column(t, src, "ds").Times()
	for _, d := range ds {
		require.Equal(t, 1, d.AddDate(0, 0, 1).Day(), "month end")
	}
}

func TestGenerateSeries_StaticFeatures(t *testing.T) {
	src, err := GenerateSeries(3, WithStaticFeatures(1), WithStaticAsCategorical(false), WithLengths(5, 5), WithSeed(3))
	require.NoError(t, err)

	ids := column(t, src, "unique_id")
	require.Equal(t, frame.KindInt, ids.Kind())

	static := column(t, src, "static_0").Ints()
	y := column(t, src, "y").Floats()
	for r := range y {
		require.Equal(t, static[r-r%5], static[r], "static is constant per series")
		base := float64(r%7) * float64(1+static[r])
		require.GreaterOrEqual(t, y[r], base)
		require.Less(t, y[r], base+0.5*float64(1+static[r]))
	}
}

func TestGenerateSeries_ArrowEngine(t *testing.T) {
	src, err := GenerateSeries(2, WithEngine(EngineArrow), WithLengths(10, 20), WithSeed(5))
	require.NoError(t, err)
	af, ok := src.(*arrowframe.Frame)
	require.True(t, ok)
	defer af.Release()

	_, isString := af.Record().Column(0).(*array.String)
	require.True(t, isString)

	res, err := processing.Process(af)
	require.NoError(t, err)
	defer res.Release()
	require.Equal(t, 2, res.Array.Len())
}

func TestGenerateSeries_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"freq", WithFreq("W")},
		{"lengths", WithLengths(10, 5)},
		{"zero length", WithLengths(0, 5)},
		{"statics", WithStaticFeatures(-1)},
		{"engine", WithEngine(Engine(7))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSeries(1, tt.opt)
			require.ErrorIs(t, err, errs.ErrInvalidOption)
		})
	}

	_, err := GenerateSeries(-1)
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}
