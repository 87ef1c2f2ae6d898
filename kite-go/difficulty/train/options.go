package train

import (
	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-golib/decisiontree"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/text"
	"github.com/kiteco/difficulty/kite-golib/tfidf"
)

// Options configures a training run.
type Options struct {
	// DataPath is the corpus CSV, optionally gzipped.
	DataPath string
	// ModelDir is the root of the bundle store.
	ModelDir string

	// AllowSynthetic trains on SyntheticSize placeholder rows when DataPath
	// does not exist. Otherwise a missing corpus is an error.
	AllowSynthetic bool
	SyntheticSize  int

	// TestFraction of the cleaned rows is held out for evaluation, chosen
	// by a shuffle seeded with Seed.
	TestFraction float64
	Seed         int64

	// Relabel re-buckets every tier from its score before training.
	Relabel   bool
	StripHTML bool

	Vectorizer tfidf.Options
	Boost      decisiontree.BoostParams
	Thresholds tier.Thresholds
	Normalizer *text.Normalizer
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		DataPath:      "data/dataset.csv",
		ModelDir:      "models",
		SyntheticSize: 50,
		TestFraction:  0.2,
		Seed:          42,
		Vectorizer:    tfidf.DefaultOptions(),
		Boost:         decisiontree.DefaultBoostParams(),
		Thresholds:    tier.DefaultThresholds(),
		Normalizer:    text.NewNormalizer(),
	}
}

// Validate checks the options before any work is done.
func (o Options) Validate() error {
	switch {
	case o.ModelDir == "":
		return errors.Errorf("model directory is required")
	case o.DataPath == "" && !o.AllowSynthetic:
		return errors.Errorf("data path is required unless synthetic data is allowed")
	case o.AllowSynthetic && o.SyntheticSize < 2:
		return errors.Errorf("synthetic corpus needs at least 2 rows, got %d", o.SyntheticSize)
	case !(o.TestFraction > 0 && o.TestFraction < 1):
		return errors.Errorf("test fraction must be in (0, 1), got %v", o.TestFraction)
	case o.Normalizer == nil:
		return errors.Errorf("normalizer is required")
	}
	return o.Thresholds.Validate()
}
