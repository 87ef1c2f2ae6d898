package tfidf

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/kiteco/difficulty/kite-golib/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unigrams(maxFeatures int) Options {
	return Options{MinN: 1, MaxN: 1, MaxFeatures: maxFeatures}
}

func TestFitVocabulary(t *testing.T) {
	corpus := []text.Tokens{
		{"graph", "tree", "graph"},
		{"tree", "sum"},
		{"dp"},
	}
	v, err := Fit(corpus, unigrams(10))
	require.NoError(t, err)

	assert.Equal(t, []string{"dp", "graph", "sum", "tree"}, v.Terms)
	assert.Equal(t, 4, v.Size())

	i, ok := v.Index("tree")
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	_, ok = v.Index("heap")
	assert.False(t, ok)

	assert.InDelta(t, math.Log(4.0/3.0)+1, v.IDF[3], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, v.IDF[0], 1e-12)
}

func TestFitTopK(t *testing.T) {
	corpus := []text.Tokens{
		{"a", "a", "a", "b", "b", "c", "d"},
	}
	v, err := Fit(corpus, unigrams(3))
	require.NoError(t, err)
	// c and d tie on frequency; c wins lexically
	assert.Equal(t, []string{"a", "b", "c"}, v.Terms)
}

func TestFitNGrams(t *testing.T) {
	corpus := []text.Tokens{{"sum", "two", "integ"}}
	v, err := Fit(corpus, Options{MinN: 1, MaxN: 2, MaxFeatures: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"integ", "sum", "sum two", "two", "two integ"}, v.Terms)
}

func TestTransform(t *testing.T) {
	corpus := []text.Tokens{
		{"graph", "tree"},
		{"tree"},
	}
	v, err := Fit(corpus, unigrams(10))
	require.NoError(t, err)

	vec := v.Transform(text.Tokens{"tree", "tree", "heap"})
	require.Len(t, vec, 2)
	assert.Equal(t, 0.0, vec[0])
	assert.InDelta(t, 2*v.IDF[1], vec[1], 1e-12)

	// out of vocabulary only
	assert.Equal(t, []float64{0, 0}, v.Transform(text.Tokens{"heap"}))
	assert.Equal(t, []float64{0, 0}, v.Transform(nil))
}

func TestTransformNormalized(t *testing.T) {
	corpus := []text.Tokens{
		{"graph", "tree"},
		{"tree"},
	}
	opts := unigrams(10)
	opts.Normalize = true
	v, x, err := FitTransform(corpus, opts)
	require.NoError(t, err)
	require.Len(t, x, 2)

	for _, vec := range x {
		var norm float64
		for _, f := range vec {
			norm += f * f
		}
		assert.InDelta(t, 1.0, norm, 1e-12)
	}
	assert.Equal(t, []float64{0, 0}, v.Transform(text.Tokens{}))
}

func TestVocabularyFrozen(t *testing.T) {
	v, err := Fit([]text.Tokens{{"graph", "tree"}}, unigrams(10))
	require.NoError(t, err)

	before := append([]string(nil), v.Terms...)
	v.Transform(text.Tokens{"heap", "stack", "queue"})
	assert.Equal(t, before, v.Terms)
	assert.Equal(t, 2, v.Size())
	_, ok := v.Index("heap")
	assert.False(t, ok)
}

func TestFitErrors(t *testing.T) {
	_, err := Fit(nil, DefaultOptions())
	assert.Error(t, err)

	_, err = Fit([]text.Tokens{{}, nil}, DefaultOptions())
	assert.Error(t, err)

	_, err = Fit([]text.Tokens{{"a"}}, Options{MinN: 2, MaxN: 1, MaxFeatures: 1})
	assert.Error(t, err)

	_, err = Fit([]text.Tokens{{"a"}}, Options{MinN: 1, MaxN: 1})
	assert.Error(t, err)
}

func TestVectorizerJSON(t *testing.T) {
	v, err := Fit([]text.Tokens{{"graph", "tree"}, {"tree"}}, DefaultOptions())
	require.NoError(t, err)

	buf, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded Vectorizer
	require.NoError(t, json.Unmarshal(buf, &decoded))
	require.NoError(t, decoded.Validate())
	assert.Equal(t, v.Transform(text.Tokens{"tree", "graph"}), decoded.Transform(text.Tokens{"tree", "graph"}))
}

func TestValidate(t *testing.T) {
	v := &Vectorizer{Terms: []string{"a", "a"}, IDF: []float64{1, 1}, MinN: 1, MaxN: 1}
	v.buildIndex()
	assert.Error(t, v.Validate())

	v = &Vectorizer{Terms: []string{"a"}, IDF: nil, MinN: 1, MaxN: 1}
	v.buildIndex()
	assert.Error(t, v.Validate())
}
