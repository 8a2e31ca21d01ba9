package frame

import "slices"

// IsSortedBy reports whether rows are in ascending order of cols compared
// left to right. It is a single O(N) pass.
func IsSortedBy(cols ...Column) bool {
	if len(cols) == 0 {
		return true
	}

	n := cols[0].Len()
	for i := 1; i < n; i++ {
		if compareRows(cols, i-1, i) > 0 {
			return false
		}
	}

	return true
}

// SortPermutation returns the row order that stably sorts cols ascending.
// Rows that compare equal on every column keep their input order.
func SortPermutation(cols ...Column) []int {
	n := 0
	if len(cols) > 0 {
		n = cols[0].Len()
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	slices.SortStableFunc(perm, func(a, b int) int {
		return compareRows(cols, a, b)
	})

	return perm
}

func compareRows(cols []Column, a, b int) int {
	for _, c := range cols {
		if r := c.Compare(a, b); r != 0 {
			return r
		}
	}

	return 0
}
