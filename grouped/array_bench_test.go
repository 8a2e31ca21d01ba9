package grouped

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func benchArray(b *testing.B, groups, maxLen int) *Array[float64] {
	b.Helper()

	rng := rand.New(rand.NewPCG(1, 2))
	sizes := make([]int, groups)
	total := 0
	for i := range sizes {
		sizes[i] = 1 + rng.IntN(maxLen)
		total += sizes[i]
	}
	data := make([]float64, total)
	for i := range data {
		data[i] = rng.Float64()
	}

	arr, err := FromSizes(data, 1, sizes)
	require.NoError(b, err)

	return arr
}

func BenchmarkAppendSeveral(b *testing.B) {
	base := benchArray(b, 1_000, 500)
	rows := make(map[int][][]float64, base.Len())
	for g := range base.Len() {
		rows[g] = [][]float64{{1}, {2}}
	}

	b.ResetTimer()
	for b.Loop() {
		arr := base.Clone()
		if err := arr.AppendSeveral(rows); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTake(b *testing.B) {
	arr := benchArray(b, 1_000, 500)
	idxs := make([]int, 0, arr.Len()/2)
	for g := 0; g < arr.Len(); g += 2 {
		idxs = append(idxs, g)
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := arr.Take(idxs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAppendOne(b *testing.B) {
	arr := benchArray(b, 100, 10)
	row := []float64{1}

	b.ResetTimer()
	for b.Loop() {
		if err := arr.AppendOne(row); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGroup(b *testing.B) {
	arr := benchArray(b, 1_000, 500)

	b.ResetTimer()
	i := 0
	for b.Loop() {
		if _, err := arr.Group(i % arr.Len()); err != nil {
			b.Fatal(err)
		}
		i++
	}
}
