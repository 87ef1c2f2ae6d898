package tfidf

import (
	"math"
	"testing"

	"github.com/kiteco/difficulty/kite-golib/text"
	"github.com/stretchr/testify/assert"
)

func TestIDFCounter(t *testing.T) {
	n := text.NewNormalizer()
	doc1 := "hello worlld"
	doc2 := "golang or c++, which one is better?"
	doc3 := "kiteman is going to save the worlld."

	idfCorpus := make(map[string]int)
	for _, doc := range []string{doc1, doc2, doc3} {
		for _, dt := range text.Uniquify(n.Normalize(doc)) {
			idfCorpus[dt]++
		}
	}

	idfCounter := TrainIDFCounter(3, idfCorpus)

	exp := math.Log(4.0/3.0) + 1
	act := idfCounter.Weight("worlld")
	assert.InDelta(t, exp, act, 1e-12)

	exp = math.Log(4.0/2.0) + 1
	act = idfCounter.Weight("golang")
	assert.InDelta(t, exp, act, 1e-12)

	// "is" is a stop word and never reaches the counter
	assert.Equal(t, 0.0, idfCounter.Weight("is"))
}
