package text

import (
	"bufio"
	"bytes"
	"strings"

	porterstemmer "github.com/kiteco/go-porterstemmer"
)

// TokenFunc defines a type of function that takes in an array of tokens and
// returns an array of tokens.
type TokenFunc func(Tokens) Tokens

// Tokens represents a slice of strings
type Tokens []string

// String joins the tokens with single spaces.
func (ts Tokens) String() string {
	return strings.Join(ts, " ")
}

// Processor consists of a list of text processing rules.
type Processor struct {
	filters []TokenFunc
}

// NewProcessor takes a list of TokenFuncs to instantiate a Filter.
func NewProcessor(funcs ...TokenFunc) *Processor {
	f := &Processor{}
	for _, fn := range funcs {
		f.filters = append(f.filters, fn)
	}
	return f
}

// Apply applies a list of TokenFunc to transform the input tokens
func (f *Processor) Apply(ts Tokens) Tokens {
	for _, fn := range f.filters {
		ts = fn(ts)
	}
	return ts
}

// Tokenize splits a string on whitespace.
func Tokenize(s string) Tokens {
	scanner := bufio.NewScanner(bytes.NewBufferString(s))
	scanner.Split(bufio.ScanWords)

	var tokens Tokens
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	return tokens
}

// RemoveStopWordsFrom returns a TokenFunc that drops every token in the given set.
func RemoveStopWordsFrom(stopWords map[string]struct{}) TokenFunc {
	return func(ts Tokens) Tokens {
		var filteredTokens Tokens
		for _, t := range ts {
			if _, skip := stopWords[t]; !skip {
				filteredTokens = append(filteredTokens, t)
			}
		}
		return filteredTokens
	}
}

// Lower converts all tokens to lower case
func Lower(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = strings.ToLower(t)
	}
	return ts
}

// Stem extracts and returns the stems of each token in the input token stream
func Stem(ts Tokens) Tokens {
	for i, t := range ts {
		ts[i] = stemToken(t)
	}
	return ts
}

// stemToken stems t. The stemmer indexes past the start of a few words that
// are nothing but a suffix (eed, eeds, eings); those are kept as they are.
func stemToken(t string) (stem string) {
	defer func() {
		if r := recover(); r != nil {
			stem = t
		}
	}()
	return porterstemmer.StemString(t)
}

// Uniquify returns the set of unique tokens in a token stream
func Uniquify(ts Tokens) Tokens {
	var uniqueTokens Tokens
	seen := make(map[string]struct{})
	for _, t := range ts {
		if _, exists := seen[t]; !exists {
			uniqueTokens = append(uniqueTokens, t)
			seen[t] = struct{}{}
		}
	}
	return uniqueTokens
}
