package decisiontree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	x := [][]float64{{0., 1.}, {1., 0.}, {2., 0.}, {0., 3.}, {4., 4.}}
	y := []float64{1., 2., 3., 4., 5.}
	params := DefaultBoostParams()
	params.NumRounds = 5
	params.MinChildWeight = 0

	model, err := FitRegressor(x, y, params)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, model.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())
	assert.Len(t, loaded.Trees, 5)
	for i, input := range x {
		assert.InDelta(t, model.Evaluate(input), loaded.Evaluate(input), 1e-9, "at i=%d", i)
	}
}

func TestLoadGarbage(t *testing.T) {
	_, err := Load(bytes.NewBufferString("{not json"))
	assert.Error(t, err)
}
