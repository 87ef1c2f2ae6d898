package decisiontree

import (
	"math"
	"sort"

	"github.com/kiteco/difficulty/kite-golib/errors"
)

type entry struct {
	row   int32
	value float64
}

// columns is a column-major view of the non-zero training values. Each column
// is sorted by decreasing value; zeros are implicit and sort below every
// stored entry, which is why features must be non-negative.
type columns struct {
	numRows     int
	numFeatures int
	cols        [][]entry
}

func newColumns(x [][]float64) (*columns, error) {
	if len(x) == 0 {
		return nil, errors.Errorf("no training rows")
	}
	numFeatures := len(x[0])
	if numFeatures == 0 {
		return nil, errors.Errorf("training rows have no features")
	}

	c := &columns{
		numRows:     len(x),
		numFeatures: numFeatures,
		cols:        make([][]entry, numFeatures),
	}
	for i, row := range x {
		if len(row) != numFeatures {
			return nil, errors.Errorf("row %d has %d features, expected %d", i, len(row), numFeatures)
		}
		for j, v := range row {
			if v == 0 {
				continue
			}
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, errors.Errorf("row %d feature %d is %v: features must be finite and non-negative", i, j, v)
			}
			c.cols[j] = append(c.cols[j], entry{row: int32(i), value: v})
		}
	}
	for _, col := range c.cols {
		sort.Slice(col, func(a, b int) bool {
			if col[a].value != col[b].value {
				return col[a].value > col[b].value
			}
			return col[a].row < col[b].row
		})
	}
	return c, nil
}
