package main

import (
	"os"
	"runtime"

	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-go/difficulty/train"
	"github.com/kiteco/difficulty/kite-golib/cmdline"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/spf13/afero"
)

var trainCmd = cmdline.Command{
	Name:     "train",
	Synopsis: "fit the vectorizer, regressor and classifier and publish a new bundle",
	Args: &trainArgs{
		Data:           defaultDataPath,
		Models:         defaultModelDir,
		SyntheticSize:  50,
		TestFraction:   0.2,
		Seed:           42,
		MinNGram:       1,
		MaxNGram:       3,
		MaxFeatures:    10000,
		Rounds:         100,
		LearningRate:   0.1,
		MaxDepth:       6,
		Lambda:         1,
		MinChildWeight: 1,
		Workers:        runtime.NumCPU(),
	},
}

type trainArgs struct {
	Data           string  `arg:"--data" help:"corpus CSV, optionally gzipped (env DIFFICULTY_DATA_PATH)"`
	Models         string  `arg:"--models" help:"bundle store directory (env DIFFICULTY_MODEL_DIR)"`
	AllowSynthetic bool    `arg:"--allow-synthetic" help:"train on a generated placeholder corpus when --data does not exist"`
	SyntheticSize  int     `arg:"--synthetic-size" help:"rows of placeholder corpus"`
	TestFraction   float64 `arg:"--test-fraction" help:"fraction of rows held out for evaluation"`
	Seed           int64   `arg:"--seed" help:"seed of the train/test shuffle"`
	Relabel        bool    `arg:"--relabel" help:"re-bucket tiers from scores before training"`
	StripHTML      bool    `arg:"--strip-html" help:"remove markup from problem statements"`
	Thresholds     string  `arg:"--thresholds" help:"YAML tier thresholds, defaults to the built-in tiers"`
	MinNGram       int     `arg:"--min-ngram"`
	MaxNGram       int     `arg:"--max-ngram"`
	MaxFeatures    int     `arg:"--max-features" help:"vocabulary size"`
	NoNormalize    bool    `arg:"--no-normalize" help:"do not L2 normalize feature vectors"`
	Rounds         int     `arg:"--rounds" help:"boosting rounds"`
	LearningRate   float64 `arg:"--learning-rate"`
	MaxDepth       int     `arg:"--max-depth"`
	Lambda         float64 `arg:"--lambda" help:"L2 regularization of leaf weights"`
	MinChildWeight float64 `arg:"--min-child-weight"`
	Workers        int     `arg:"--workers" help:"parallel split search workers"`
	Verbose        bool    `arg:"-v,--verbose"`
}

func (args *trainArgs) Validate() error {
	switch {
	case args.Models == "":
		return errors.Errorf("--models is required")
	case args.TestFraction <= 0 || args.TestFraction >= 1:
		return errors.Errorf("--test-fraction must be in (0, 1)")
	case args.Rounds < 1:
		return errors.Errorf("--rounds must be positive")
	case args.Workers < 1:
		return errors.Errorf("--workers must be positive")
	}
	return nil
}

func (args *trainArgs) Handle() error {
	logger := newLogger(args.Verbose)
	defer logger.Sync()

	fs := afero.NewOsFs()
	thresholds, err := tier.LoadThresholds(fs, args.Thresholds)
	if err != nil {
		return err
	}

	opts := train.DefaultOptions()
	opts.DataPath = args.Data
	opts.ModelDir = args.Models
	opts.AllowSynthetic = args.AllowSynthetic
	opts.SyntheticSize = args.SyntheticSize
	opts.TestFraction = args.TestFraction
	opts.Seed = args.Seed
	opts.Relabel = args.Relabel
	opts.StripHTML = args.StripHTML
	opts.Thresholds = thresholds

	opts.Vectorizer.MinN = args.MinNGram
	opts.Vectorizer.MaxN = args.MaxNGram
	opts.Vectorizer.MaxFeatures = args.MaxFeatures
	opts.Vectorizer.Normalize = !args.NoNormalize

	opts.Boost.NumRounds = args.Rounds
	opts.Boost.LearningRate = args.LearningRate
	opts.Boost.MaxDepth = args.MaxDepth
	opts.Boost.Lambda = args.Lambda
	opts.Boost.MinChildWeight = args.MinChildWeight
	opts.Boost.Workers = args.Workers

	res, err := train.Run(fs, opts, logger)
	if err != nil {
		return err
	}
	return res.WriteReport(os.Stdout)
}
