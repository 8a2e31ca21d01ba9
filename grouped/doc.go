// Package grouped implements a ragged array: many variable-length series
// stored contiguously in one flat buffer plus a boundary index.
//
// # Layout
//
// An Array of G groups with C columns keeps every row of every group in a
// single row-major buffer, concatenated in group order, together with an
// index of G+1 cumulative boundaries:
//
//	indptr: [0, 2, 2, 5]           // three groups of sizes 2, 0, 3
//	data:   [r0 r1 | | r2 r3 r4]   // each r is C values
//
// Group lookup and sub-ranges are O(1) and return borrowed Views. Bulk
// selection (Take) and multi-group appends (AppendSeveral) are a single pass
// over the buffer.
//
// # Building
//
// Boundaries turns a key column that is already grouped contiguously into a
// boundary index and the ordered distinct keys:
//
//	indptr, keys := grouped.Boundaries([]int64{1, 1, 2})
//	// indptr = [0, 2, 3], keys = [1, 2]
//	arr, err := grouped.New([]float64{10, 11, 20}, 1, indptr)
//
// The processing package produces both from a tabular source.
//
// # View Invalidation
//
// Views alias the Array's buffer. AppendOne and AppendSeveral may replace the
// buffer, after which earlier views still hold the old rows (they are never
// dangling) but no longer reflect the Array. Re-fetch views after appending.
package grouped
