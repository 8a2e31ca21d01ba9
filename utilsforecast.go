// Package utilsforecast turns long-format panels of time series into ragged
// arrays that forecasting code can slice per series in O(1).
//
// A panel is a table with one row per (series, time) observation, usually
// with columns unique_id, ds and y. Normalizing it sorts the rows by series
// and time when needed, checks the required columns and builds a
// grouped.Array whose groups are the series.
//
// # Core Features
//
//   - Ragged arrays of any numeric type with O(1) group views
//   - In-memory and Apache Arrow backed tables behind one Source interface
//   - Full and partial column validation with all missing columns reported
//   - String time columns parsed into timestamps, string ids optionally into integers
//   - Compressed, checksummed snapshots (None, Zstd, S2, LZ4; Raw or Gorilla values)
//
// # Basic Usage
//
// Normalizing a panel:
//
//	import "github.com/marcozanotti/utilsforecast"
//
//	f, _ := frame.New(
//	    frame.StringColumn("unique_id", []string{"b", "a", "a"}),
//	    frame.StringColumn("ds", []string{"2000-01-01", "2000-01-02", "2000-01-01"}),
//	    frame.FloatColumn("y", []float64{20, 11, 10}),
//	)
//	res, _ := utilsforecast.Normalize(f)
//	defer res.Release()
//
//	view, _ := res.GroupOf("a")
//	fmt.Println(view.Column(0)) // [10 11]
//
// Persisting and restoring it:
//
//	data, _ := utilsforecast.EncodeSnapshot(res)
//	panel, _ := utilsforecast.DecodeSnapshot(data)
//
// # Package Structure
//
// This package provides top-level wrappers around the grouped, processing
// and snapshot packages for the common cases. Use those packages directly
// for finer control.
package utilsforecast

import (
	"github.com/marcozanotti/utilsforecast/format"
	"github.com/marcozanotti/utilsforecast/grouped"
	"github.com/marcozanotti/utilsforecast/internal/hash"
	"github.com/marcozanotti/utilsforecast/processing"
	"github.com/marcozanotti/utilsforecast/snapshot"
)

var defaultSnapshotOptions = []snapshot.Option{
	snapshot.WithLittleEndian(),
	snapshot.WithCompression(format.CompressionZstd),
	snapshot.WithValueEncoding(format.TypeGorilla),
}

// Normalize validates, coerces and sorts src, then groups its value columns
// by series.
//
// src may be a *frame.Frame, an *arrowframe.Frame or an arrow.Record.
//
// Parameters:
//   - src: The long-format panel
//   - opts: Column names, validation mode, sorting and logging options
//
// Returns:
//   - *processing.Result: The grouped values, ids and last times. Call Release when done.
//   - error: See processing.Process
//
// Example:
//
//	res, err := utilsforecast.Normalize(rec,
//	    processing.WithColumns("store", "date", "sales"),
//	    processing.WithValueColumns("sales", "price"),
//	)
func Normalize(src any, opts ...processing.Option) (*processing.Result, error) {
	return processing.Process(src, opts...)
}

// NewGroupedArray builds a float64 ragged array from row-major data with
// cols values per row and a boundary index of len(groups)+1 entries.
func NewGroupedArray(data []float64, cols int, indptr []int) (*grouped.Array[float64], error) {
	return grouped.New(data, cols, indptr)
}

// GroupBoundaries computes the boundary index of a contiguously grouped key
// column and returns it with the distinct keys in order of appearance.
func GroupBoundaries[K comparable](keys []K) ([]int, []K) {
	return grouped.Boundaries(keys)
}

// EncodeSnapshot serializes a normalized panel with little-endian byte
// order, Zstd compression and Gorilla value encoding. opts override these
// defaults.
func EncodeSnapshot(res *processing.Result, opts ...snapshot.Option) ([]byte, error) {
	all := make([]snapshot.Option, 0, len(defaultSnapshotOptions)+len(opts))
	all = append(all, defaultSnapshotOptions...)
	all = append(all, opts...)

	return snapshot.EncodeResult(res, all...)
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot or snapshot.Encode.
func DecodeSnapshot(data []byte) (*snapshot.Panel, error) {
	return snapshot.Decode(data)
}

// SeriesID returns the 64-bit xxHash64 of a series key, the same hash
// grouped.KeyIndex uses for lookups.
//
// Example:
//
//	id := utilsforecast.SeriesID("store_1")
func SeriesID(key string) uint64 {
	return hash.ID(key)
}
