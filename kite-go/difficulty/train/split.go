package train

import (
	"math"
	"math/rand"

	"github.com/kiteco/difficulty/kite-golib/errors"
)

// split partitions row indices into a training and a held-out set. The test
// set holds ceil(n*fraction) rows; both sides must be non-empty.
func split(n int, fraction float64, seed int64) (trainIdx, testIdx []int, err error) {
	testSize := int(math.Ceil(float64(n) * fraction))
	if testSize < 1 || testSize >= n {
		return nil, nil, errors.Errorf("cannot hold out %d of %d rows", testSize, n)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[testSize:], perm[:testSize], nil
}

func selectRows(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}

func selectFloats(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

func selectInts(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
