package arrowframe

import (
	"math"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
)

func day(d int) time.Time {
	return time.Date(2000, 1, d, 0, 0, 0, 0, time.UTC)
}

func unsortedColumns() []frame.Column {
	return []frame.Column{
		frame.StringColumn("unique_id", []string{"b", "a", "a"}),
		frame.TimeColumn("ds", []time.Time{day(1), day(2), day(1)}),
		frame.FloatColumn("y", []float64{20, 11, 10}),
	}
}

func TestFromColumns(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	f, err := FromColumns(mem, unsortedColumns()...)
	require.NoError(t, err)
	defer f.Release()

	require.Equal(t, 3, f.Len())
	require.Equal(t, []string{"unique_id", "ds", "y"}, f.Columns())

	ds, err := f.Column("ds")
	require.NoError(t, err)
	require.Equal(t, frame.KindTime, ds.Kind())
	require.Equal(t, []time.Time{day(1), day(2), day(1)}, ds.Times())

	ids, err := f.Column("unique_id")
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "a"}, ids.Strings())

	_, err = f.Column("nope")
	require.ErrorIs(t, err, errs.ErrMissingColumns)

	_, err = FromColumns(mem, frame.IntColumn("a", []int64{1}), frame.IntColumn("b", nil))
	require.ErrorIs(t, err, errs.ErrColumnLength)
}

func TestSortBy(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	f, err := FromColumns(mem, unsortedColumns()...)
	require.NoError(t, err)
	defer f.Release()

	src, err := f.SortBy("unique_id", "ds")
	require.NoError(t, err)
	sorted := src.(*Frame)
	defer sorted.Release()

	y, err := sorted.Column("y")
	require.NoError(t, err)
	require.Equal(t, []float64{10, 11, 20}, y.Floats())

	// input untouched
	orig, err := f.Column("y")
	require.NoError(t, err)
	require.Equal(t, []float64{20, 11, 10}, orig.Floats())

	_, err = f.SortBy("unique_id", "missing")
	require.ErrorIs(t, err, errs.ErrMissingColumns)
}

func TestWithColumns(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	f, err := FromColumns(mem, unsortedColumns()...)
	require.NoError(t, err)
	defer f.Release()

	src, err := f.WithColumns(
		frame.FloatColumn("y", []float64{1, 2, 3}),
		frame.IntColumn("static_0", []int64{7, 7, 8}),
	)
	require.NoError(t, err)
	out := src.(*Frame)
	defer out.Release()

	require.Equal(t, []string{"unique_id", "ds", "y", "static_0"}, out.Columns())
	y, err := out.Column("y")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, y.Floats())

	orig, err := f.Column("y")
	require.NoError(t, err)
	require.Equal(t, []float64{20, 11, 10}, orig.Floats())

	_, err = f.WithColumns(frame.IntColumn("short", []int64{1}))
	require.ErrorIs(t, err, errs.ErrColumnLength)
}

func TestNew_NativeArrowTypes(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ib := array.NewInt32Builder(mem)
	defer ib.Release()
	ib.AppendValues([]int32{3, 10}, nil)
	ids := ib.NewArray()
	defer ids.Release()

	db := array.NewDate32Builder(mem)
	defer db.Release()
	db.AppendValues([]arrow.Date32{arrow.Date32FromTime(day(1)), arrow.Date32FromTime(day(2))}, nil)
	dates := db.NewArray()
	defer dates.Release()

	fb := array.NewFloat64Builder(mem)
	defer fb.Release()
	fb.Append(1.5)
	fb.AppendNull()
	vals := fb.NewArray()
	defer vals.Release()

	sb := array.NewDictionaryBuilder(mem, &arrow.DictionaryType{
		IndexType: arrow.PrimitiveTypes.Int8,
		ValueType: arrow.BinaryTypes.String,
	}).(*array.BinaryDictionaryBuilder)
	defer sb.Release()
	require.NoError(t, sb.AppendString("north"))
	require.NoError(t, sb.AppendString("north"))
	cats := sb.NewArray()
	defer cats.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "unique_id", Type: ids.DataType()},
		{Name: "ds", Type: dates.DataType()},
		{Name: "y", Type: vals.DataType(), Nullable: true},
		{Name: "region", Type: cats.DataType()},
	}, nil)
	rec := array.NewRecord(schema, []arrow.Array{ids, dates, vals, cats}, 2)
	defer rec.Release()

	f, err := New(rec, WithAllocator(mem))
	require.NoError(t, err)
	defer f.Release()

	idCol, err := f.Column("unique_id")
	require.NoError(t, err)
	require.Equal(t, []int64{3, 10}, idCol.Ints())

	ds, err := f.Column("ds")
	require.NoError(t, err)
	require.Equal(t, []time.Time{day(1), day(2)}, ds.Times())

	y, err := f.Column("y")
	require.NoError(t, err)
	require.Equal(t, 1.5, y.Floats()[0])
	require.True(t, math.IsNaN(y.Floats()[1]))

	region, err := f.Column("region")
	require.NoError(t, err)
	require.Equal(t, []string{"north", "north"}, region.Strings())

	_, err = New(nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedSource)

	_, err = New(rec, WithAllocator(nil))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestColumn_Uint64(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	build := func(vals []uint64) arrow.Record {
		b := array.NewUint64Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		arr := b.NewArray()
		defer arr.Release()

		schema := arrow.NewSchema([]arrow.Field{{Name: "unique_id", Type: arr.DataType()}}, nil)

		return array.NewRecord(schema, []arrow.Array{arr}, int64(arr.Len()))
	}

	inRange := build([]uint64{1, math.MaxInt64})
	defer inRange.Release()
	f, err := New(inRange)
	require.NoError(t, err)
	defer f.Release()

	ids, err := f.Column("unique_id")
	require.NoError(t, err)
	require.Equal(t, []int64{1, math.MaxInt64}, ids.Ints())

	tooLarge := build([]uint64{1, 1<<63 + 1})
	defer tooLarge.Release()
	g, err := New(tooLarge)
	require.NoError(t, err)
	defer g.Release()

	_, err = g.Column("unique_id")
	require.ErrorIs(t, err, errs.ErrColumnType)

	_, err = g.SortBy("unique_id")
	require.ErrorIs(t, err, errs.ErrColumnType)
}

func TestColumn_NullTimeRejected(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tb := array.NewTimestampBuilder(mem, timestampType)
	defer tb.Release()
	tb.Append(arrow.Timestamp(day(1).UnixNano()))
	tb.AppendNull()
	ts := tb.NewArray()
	defer ts.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: "ds", Type: ts.DataType(), Nullable: true}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{ts}, 2)
	defer rec.Release()

	f, err := New(rec)
	require.NoError(t, err)
	defer f.Release()

	_, err = f.Column("ds")
	require.ErrorIs(t, err, errs.ErrColumnType)
}
