package text

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// DefaultNormalizerVersion identifies the stock English normalizer. It is
// recorded with fitted artifacts so that a model is never served behind a
// different cleaning pipeline than the one it was trained with.
const DefaultNormalizerVersion = "porter-en-v1"

// Normalizer turns raw problem text into a canonical token stream:
// lower-case, strip everything but ASCII letters, digits and whitespace,
// split on whitespace, drop stop words, Porter-stem what is left.
//
// A Normalizer is immutable after construction and safe for concurrent use.
type Normalizer struct {
	version   string
	processor *Processor
}

// NewNormalizer returns the English normalizer.
func NewNormalizer() *Normalizer {
	return newNormalizer(DefaultNormalizerVersion, englishStopWords)
}

// NewNormalizerWithStopWords returns a normalizer using the given stop words.
// Its version is derived from the stop-word set.
func NewNormalizerWithStopWords(words []string) *Normalizer {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	h := fnv.New64a()
	for _, w := range sorted {
		h.Write([]byte(w))
		h.Write([]byte{0})
	}
	return newNormalizer(fmt.Sprintf("porter-custom-%x", h.Sum64()), words)
}

func newNormalizer(version string, words []string) *Normalizer {
	return &Normalizer{
		version:   version,
		processor: NewProcessor(Lower, RemoveStopWordsFrom(stopWordSet(words)), Stem),
	}
}

// Version identifies the cleaning pipeline.
func (n *Normalizer) Version() string {
	return n.version
}

// Normalize returns the canonical token stream for raw. Empty input yields an
// empty stream.
func (n *Normalizer) Normalize(raw string) Tokens {
	return n.processor.Apply(Tokenize(CleanASCII(raw)))
}
