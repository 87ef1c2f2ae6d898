package text

import (
	"errors"
	"strings"
)

// NGrams constructs the n grams (of order n) for the given token stream.
func NGrams(n int, toks []string) ([][]string, error) {
	if n < 1 || len(toks) < n {
		return nil, errors.New("not enough tokens for nGrams")
	}
	var nGrams [][]string
	for i := 0; i+n <= len(toks); i++ {
		var nGram []string
		for j := i; j < i+n; j++ {
			nGram = append(nGram, toks[j])
		}
		nGrams = append(nGrams, nGram)
	}
	return nGrams, nil
}

// JoinedNGrams returns every contiguous n gram of toks for n in [minN, maxN],
// each joined with a single space. Unigrams come first, then bigrams and so on.
// Orders longer than the stream are skipped.
func JoinedNGrams(minN, maxN int, toks []string) []string {
	if minN < 1 {
		minN = 1
	}
	var out []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(toks); i++ {
			out = append(out, strings.Join(toks[i:i+n], " "))
		}
	}
	return out
}
