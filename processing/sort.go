package processing

import "github.com/marcozanotti/utilsforecast/frame"

// IsSorted reports whether src is ordered by (idCol, timeCol) ascending.
func IsSorted(src frame.Source, idCol, timeCol string) (bool, error) {
	ids, err := src.Column(idCol)
	if err != nil {
		return false, err
	}
	times, err := src.Column(timeCol)
	if err != nil {
		return false, err
	}

	return frame.IsSortedBy(ids, times), nil
}

// EnsureSorted returns src itself when it is already ordered by
// (idCol, timeCol), and a stably sorted copy otherwise.
func EnsureSorted(src frame.Source, idCol, timeCol string) (frame.Source, error) {
	sorted, err := IsSorted(src, idCol, timeCol)
	if err != nil {
		return nil, err
	}
	if sorted {
		return src, nil
	}

	return src.SortBy(idCol, timeCol)
}
