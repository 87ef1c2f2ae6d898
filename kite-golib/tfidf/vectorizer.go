package tfidf

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/text"
)

// Options controls the vocabulary built by Fit.
type Options struct {
	// MinN and MaxN bound the order of the word n-grams used as features.
	MinN int
	MaxN int
	// MaxFeatures caps the vocabulary; the most frequent n-grams are kept.
	MaxFeatures int
	// Normalize scales every transformed vector to unit L2 norm.
	Normalize bool
}

// DefaultOptions are unigrams through trigrams, 10000 features, L2 normalized.
func DefaultOptions() Options {
	return Options{
		MinN:        1,
		MaxN:        3,
		MaxFeatures: 10000,
		Normalize:   true,
	}
}

func (o Options) validate() error {
	switch {
	case o.MinN < 1:
		return errors.Errorf("min n-gram order must be at least 1, got %d", o.MinN)
	case o.MaxN < o.MinN:
		return errors.Errorf("max n-gram order %d is below min order %d", o.MaxN, o.MinN)
	case o.MaxFeatures < 1:
		return errors.Errorf("max features must be positive, got %d", o.MaxFeatures)
	}
	return nil
}

// Vectorizer maps token streams onto a fixed vocabulary of n-grams weighted by
// inverse document frequency. The vocabulary is frozen by Fit; Transform never
// modifies the Vectorizer and is safe for concurrent use.
type Vectorizer struct {
	// Terms maps feature index to n-gram, in lexical order.
	Terms []string `json:"terms"`
	// IDF holds the weight of each feature index.
	IDF       []float64 `json:"idf"`
	MinN      int       `json:"min_n"`
	MaxN      int       `json:"max_n"`
	Normalize bool      `json:"normalize"`

	index map[string]int
}

type termCount struct {
	term  string
	count int
}

// Fit builds a vocabulary from the corpus in two passes: count every n-gram
// over the whole corpus, then keep the MaxFeatures most frequent ones (ties
// broken lexically).
func Fit(corpus []text.Tokens, opts Options) (*Vectorizer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return nil, errors.Errorf("cannot fit vectorizer on an empty corpus")
	}

	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		grams := text.Tokens(text.JoinedNGrams(opts.MinN, opts.MaxN, doc))
		for _, g := range grams {
			termFreq[g]++
		}
		for _, g := range text.Uniquify(grams) {
			docFreq[g]++
		}
	}
	if len(termFreq) == 0 {
		return nil, errors.Errorf("empty vocabulary: no n-grams in %d documents", len(corpus))
	}

	counts := make([]termCount, 0, len(termFreq))
	for term, count := range termFreq {
		counts = append(counts, termCount{term: term, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].term < counts[j].term
	})
	if len(counts) > opts.MaxFeatures {
		counts = counts[:opts.MaxFeatures]
	}

	terms := make([]string, 0, len(counts))
	for _, c := range counts {
		terms = append(terms, c.term)
	}
	sort.Strings(terms)

	idf := TrainIDFCounter(len(corpus), docFreq)
	v := &Vectorizer{
		Terms:     terms,
		IDF:       make([]float64, len(terms)),
		MinN:      opts.MinN,
		MaxN:      opts.MaxN,
		Normalize: opts.Normalize,
	}
	for i, term := range terms {
		v.IDF[i] = idf.Weight(term)
	}
	v.buildIndex()
	return v, nil
}

// FitTransform fits a Vectorizer and transforms every document of the corpus.
func FitTransform(corpus []text.Tokens, opts Options) (*Vectorizer, [][]float64, error) {
	v, err := Fit(corpus, opts)
	if err != nil {
		return nil, nil, err
	}
	x := make([][]float64, len(corpus))
	for i, doc := range corpus {
		x[i] = v.Transform(doc)
	}
	return v, x, nil
}

func (v *Vectorizer) buildIndex() {
	v.index = make(map[string]int, len(v.Terms))
	for i, term := range v.Terms {
		v.index[term] = i
	}
}

// Size is the length of every vector produced by Transform.
func (v *Vectorizer) Size() int {
	return len(v.Terms)
}

// Index returns the feature index of an n-gram.
func (v *Vectorizer) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Transform returns a new feature vector for toks. N-grams outside the
// vocabulary are dropped; an empty stream yields the zero vector.
func (v *Vectorizer) Transform(toks text.Tokens) []float64 {
	vec := make([]float64, len(v.Terms))
	for _, g := range text.JoinedNGrams(v.MinN, v.MaxN, toks) {
		if i, ok := v.index[g]; ok {
			vec[i] += v.IDF[i]
		}
	}
	if v.Normalize {
		var norm float64
		for _, x := range vec {
			norm += x * x
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for i := range vec {
				vec[i] /= norm
			}
		}
	}
	return vec
}

// Validate checks the internal consistency of a decoded Vectorizer.
func (v *Vectorizer) Validate() error {
	switch {
	case len(v.Terms) == 0:
		return errors.Errorf("vectorizer has an empty vocabulary")
	case len(v.Terms) != len(v.IDF):
		return errors.Errorf("vectorizer has %d terms but %d idf weights", len(v.Terms), len(v.IDF))
	case v.MinN < 1 || v.MaxN < v.MinN:
		return errors.Errorf("vectorizer has invalid n-gram range [%d, %d]", v.MinN, v.MaxN)
	case len(v.index) != len(v.Terms):
		return errors.Errorf("vectorizer vocabulary has duplicate terms")
	}
	return nil
}

// UnmarshalJSON decodes a Vectorizer and rebuilds its term index.
func (v *Vectorizer) UnmarshalJSON(buf []byte) error {
	type plain Vectorizer
	var p plain
	if err := json.Unmarshal(buf, &p); err != nil {
		return err
	}
	*v = Vectorizer(p)
	v.buildIndex()
	return nil
}
