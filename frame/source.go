// Package frame defines the tabular source abstraction consumed by the
// normalizer, together with a native in-memory columnar backend.
//
// A Source exposes named, typed columns and never mutates in place:
// WithColumns and SortBy return new sources. Two backends implement it: Frame
// in this package, and arrowframe.Frame over an Apache Arrow record.
package frame

// Source is a read-only tabular data source.
type Source interface {
	// Columns returns the column names in order.
	Columns() []string

	// Column returns the named column converted to a Column.
	// Returns a *errs.MissingColumnsError if the column does not exist.
	Column(name string) (Column, error)

	// Len returns the number of rows.
	Len() int

	// WithColumns returns a new source where each given column replaces the
	// same-named column or is appended after the existing ones.
	WithColumns(cols ...Column) (Source, error)

	// SortBy returns a new source with rows stably sorted by the named
	// columns, compared left to right in ascending order.
	SortBy(keys ...string) (Source, error)
}

// MissingColumns reports which of names are absent from src, preserving their order.
func MissingColumns(src Source, names ...string) []string {
	present := make(map[string]struct{}, len(names))
	for _, c := range src.Columns() {
		present[c] = struct{}{}
	}

	var missing []string
	for _, n := range names {
		if _, ok := present[n]; !ok {
			missing = append(missing, n)
		}
	}

	return missing
}
