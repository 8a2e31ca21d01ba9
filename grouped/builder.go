package grouped

import (
	"fmt"

	"github.com/marcozanotti/utilsforecast/errs"
)

// Boundaries computes the boundary index of a key sequence that is already
// grouped contiguously (for example sorted by key).
//
// A new group starts whenever a key differs from the previous row's key, so
// scattered rows of the same key produce several groups; grouping them is
// the caller's job. The scan is O(N).
//
// Returns:
//   - []int: Boundary index of length len(uniq)+1; [0] for empty input
//   - []K: Group keys in order of first appearance
func Boundaries[K comparable](keys []K) ([]int, []K) {
	indptr := []int{0}
	var uniq []K

	for i, k := range keys {
		if i > 0 && k == keys[i-1] {
			continue
		}
		if i > 0 {
			indptr = append(indptr, i)
		}
		uniq = append(uniq, k)
	}

	if len(keys) > 0 {
		indptr = append(indptr, len(keys))
	}

	return indptr, uniq
}

// IndptrFromSizes turns per-group row counts into a boundary index.
func IndptrFromSizes(sizes []int) ([]int, error) {
	indptr := make([]int, len(sizes)+1)
	for i, s := range sizes {
		if s < 0 {
			return nil, fmt.Errorf("%w: group %d has negative size %d", errs.ErrInvalidBoundaries, i, s)
		}
		indptr[i+1] = indptr[i] + s
	}

	return indptr, nil
}

// Sizes returns the row count of every group of a boundary index.
func Sizes(indptr []int) []int {
	if len(indptr) == 0 {
		return nil
	}

	sizes := make([]int, len(indptr)-1)
	for i := range sizes {
		sizes[i] = indptr[i+1] - indptr[i]
	}

	return sizes
}

// LastPositions returns the absolute row index of the last row of every
// group, or -1 for empty groups.
func LastPositions(indptr []int) []int {
	if len(indptr) == 0 {
		return nil
	}

	last := make([]int, len(indptr)-1)
	for i := range last {
		if indptr[i+1] > indptr[i] {
			last[i] = indptr[i+1] - 1
		} else {
			last[i] = -1
		}
	}

	return last
}
