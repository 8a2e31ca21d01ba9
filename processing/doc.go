// Package processing normalizes tabular sources into grouped ragged arrays.
//
// Process accepts a frame.Frame, an arrowframe.Frame or a raw arrow.Record
// with an id column, a time column and numeric value columns. It validates
// the required columns, coerces String time values to time.Time, sorts rows
// by (id, time) when needed and materializes a grouped.Array[float64] with
// one group per id, plus the ids and the last time of every group.
//
// Basic usage:
//
//	res, err := processing.Process(df,
//		processing.WithValueColumns("y", "price"),
//		processing.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer res.Release()
//
//	v, ok := res.GroupOf("store_1")
//
// The steps are also exported individually (Validate, CoerceTime, CoerceIDs,
// IsSorted, EnsureSorted, ValueMatrix) for callers that build their own
// pipelines.
package processing
