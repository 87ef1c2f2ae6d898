package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStopWords(t *testing.T) {
	testWords := []string{"i", "he", "has", "weren't", "the", "of"}
	stopWords := StopWords()
	for _, word := range testWords {

		_, exists := stopWords[word]
		assert.Equal(t, true, exists)
	}

	for _, word := range []string{"sum", "graph", "integer"} {
		_, exists := stopWords[word]
		assert.False(t, exists, word)
	}
}

func TestEnglishStopWordsCopy(t *testing.T) {
	words := EnglishStopWords()
	words[0] = "graph"
	_, exists := StopWords()["graph"]
	assert.False(t, exists)
}
