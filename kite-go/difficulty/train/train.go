package train

import (
	"strings"

	"github.com/kiteco/difficulty/kite-go/difficulty/bundle"
	"github.com/kiteco/difficulty/kite-go/difficulty/corpus"
	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-golib/decisiontree"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/kitelog"
	"github.com/kiteco/difficulty/kite-golib/text"
	"github.com/kiteco/difficulty/kite-golib/tfidf"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Result summarizes a successful run.
type Result struct {
	RunID      string
	Synthetic  bool
	DataPath   string
	Clean      corpus.CleanStats
	Relabeled  int
	Features   int
	Classes    []string
	Thresholds tier.Thresholds
	Metrics    bundle.Metrics
	Durations  kitelog.Durations
}

// run holds the intermediate state of one training run.
type run struct {
	fs     afero.Fs
	opts   Options
	logger *zap.Logger
	m      *machine

	records   []*corpus.Record
	synthetic bool
	examples  []corpus.Example
	stats     corpus.CleanStats
	relabeled int

	vectorizer *tfidf.Vectorizer
	x          [][]float64
	scores     []float64
	tiers      []string

	encoder *tier.Encoder
	codes   []int

	trainIdx, testIdx []int

	regressor  *decisiontree.Ensemble
	classifier *decisiontree.Classifier
	metrics    bundle.Metrics
	runID      string
}

// Run trains the score regressor and tier classifier, evaluates them on a
// held-out split and publishes a new bundle under opts.ModelDir. If any stage
// fails the error is a *StageError and nothing is published.
func Run(fs afero.Fs, opts Options, logger *zap.Logger) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid training options")
	}
	logger = kitelog.OrNop(logger).With(kitelog.Operation("train"))
	r := &run{
		fs:     fs,
		opts:   opts,
		logger: logger,
		m:      newMachine(logger),
	}

	stages := []struct {
		stage Stage
		fn    func() error
	}{
		{StageLoad, r.load},
		{StageClean, r.clean},
		{StageVectorize, r.vectorize},
		{StageFitEncoder, r.fitEncoder},
		{StageSplit, r.split},
		{StageFitRegressor, r.fitRegressor},
		{StageFitClassifier, r.fitClassifier},
		{StageEvaluate, r.evaluate},
		{StagePersist, r.persist},
	}
	for _, s := range stages {
		if err := r.m.enter(s.stage); err != nil {
			return nil, err
		}
		if err := s.fn(); err != nil {
			return nil, r.m.fail(err)
		}
	}
	if err := r.m.enter(StageDone); err != nil {
		return nil, err
	}
	durations := append(kitelog.Durations(nil), r.m.durations...)
	logger.Info("training complete", kitelog.RunID(r.runID), zap.Duration("elapsed", durations.Total()))
	r.m.durations.Flush(logger)

	return &Result{
		RunID:      r.runID,
		Synthetic:  r.synthetic,
		DataPath:   opts.DataPath,
		Clean:      r.stats,
		Relabeled:  r.relabeled,
		Features:   r.vectorizer.Size(),
		Classes:    r.encoder.Names,
		Thresholds: opts.Thresholds,
		Metrics:    r.metrics,
		Durations:  durations,
	}, nil
}

func (r *run) load() error {
	exists := false
	if r.opts.DataPath != "" {
		var err error
		if exists, err = afero.Exists(r.fs, r.opts.DataPath); err != nil {
			return err
		}
	}
	if !exists {
		if !r.opts.AllowSynthetic {
			return errors.Errorf("no corpus at %q; pass --allow-synthetic to train on placeholder data", r.opts.DataPath)
		}
		r.logger.Warn("SYNTHETIC DATA: no corpus found, training on a generated placeholder corpus; the resulting models are meaningless",
			zap.String("path", r.opts.DataPath), kitelog.Samples(r.opts.SyntheticSize))
		r.records = corpus.Synthesize(r.opts.SyntheticSize)
		r.synthetic = true
		return nil
	}

	records, err := corpus.LoadRecords(r.fs, r.opts.DataPath)
	if err != nil {
		return err
	}
	r.records = records
	r.logger.Info("loaded corpus", zap.String("path", r.opts.DataPath), kitelog.Samples(len(records)))
	return nil
}

func (r *run) clean() error {
	r.examples, r.stats = corpus.Clean(r.records, corpus.CleanOptions{StripHTML: r.opts.StripHTML})
	r.logger.Info("cleaned corpus", kitelog.Samples(r.stats.Kept), zap.Stringer("stats", r.stats))
	if r.opts.Relabel {
		r.relabeled = corpus.RelabelExamples(r.examples, r.opts.Thresholds)
		r.logger.Info("relabeled tiers from scores", zap.Int("changed", r.relabeled),
			zap.String("thresholds", r.opts.Thresholds.Version))
	}
	if len(r.examples) == 0 {
		return errors.Errorf("no usable rows left after cleaning: %s", r.stats)
	}
	return nil
}

func (r *run) vectorize() error {
	docs := make([]text.Tokens, len(r.examples))
	r.scores = make([]float64, len(r.examples))
	r.tiers = make([]string, len(r.examples))
	for i, ex := range r.examples {
		docs[i] = r.opts.Normalizer.Normalize(ex.Problem.Text())
		r.scores[i] = ex.Score
		r.tiers[i] = ex.Tier
	}
	v, x, err := tfidf.FitTransform(docs, r.opts.Vectorizer)
	if err != nil {
		return err
	}
	r.vectorizer, r.x = v, x
	r.logger.Info("vectorized corpus", kitelog.Samples(len(x)), kitelog.Features(v.Size()))
	return nil
}

func (r *run) fitEncoder() error {
	enc, err := tier.FitEncoder(r.tiers)
	if err != nil {
		return err
	}
	codes, err := enc.EncodeAll(r.tiers)
	if err != nil {
		return err
	}
	r.encoder, r.codes = enc, codes
	r.logger.Info("fit tier encoder", zap.String("tiers", strings.Join(enc.Names, ",")))
	return nil
}

func (r *run) split() error {
	trainIdx, testIdx, err := split(len(r.x), r.opts.TestFraction, r.opts.Seed)
	if err != nil {
		return err
	}
	r.trainIdx, r.testIdx = trainIdx, testIdx
	r.logger.Info("split corpus", zap.Int("train", len(trainIdx)), zap.Int("test", len(testIdx)))
	return nil
}

func (r *run) fitRegressor() error {
	reg, err := decisiontree.FitRegressor(selectRows(r.x, r.trainIdx), selectFloats(r.scores, r.trainIdx), r.opts.Boost)
	if err != nil {
		return err
	}
	r.regressor = reg
	r.logger.Info("fit regressor", kitelog.Model("regressor"), zap.Int("trees", len(reg.Trees)))
	return nil
}

func (r *run) fitClassifier() error {
	clf, err := decisiontree.FitClassifier(selectRows(r.x, r.trainIdx), selectInts(r.codes, r.trainIdx), r.encoder.Size(), r.opts.Boost)
	if err != nil {
		return err
	}
	r.classifier = clf
	r.logger.Info("fit classifier", kitelog.Model("classifier"), zap.Int("classes", clf.NumClasses))
	return nil
}

func (r *run) evaluate() error {
	var tiers []string
	for _, i := range r.testIdx {
		tiers = append(tiers, r.tiers[i])
	}
	m, err := evaluate(r.regressor, r.classifier, r.encoder, r.opts.Thresholds,
		selectRows(r.x, r.testIdx), selectFloats(r.scores, r.testIdx), tiers)
	if err != nil {
		return err
	}
	m.TrainSize = len(r.trainIdx)
	r.metrics = m
	r.logger.Info("evaluated models",
		zap.Float64("accuracy", m.Accuracy),
		zap.Float64("mae", m.MAE),
		zap.Float64("rmse", m.RMSE),
		zap.Float64("derived_accuracy", m.DerivedAccuracy))
	return nil
}

func (r *run) persist() error {
	manifest := bundle.NewManifest(r.opts.Normalizer.Version(), r.opts.Thresholds.Version)
	manifest.Synthetic = r.synthetic
	manifest.Examples = len(r.examples)
	manifest.Features = r.vectorizer.Size()
	manifest.Classes = r.encoder.Names
	manifest.Metrics = r.metrics

	b := &bundle.Bundle{
		Manifest:   manifest,
		Vectorizer: r.vectorizer,
		Regressor:  r.regressor,
		Classifier: r.classifier,
		Encoder:    r.encoder,
	}
	if err := bundle.NewStore(r.fs, r.opts.ModelDir).Save(b); err != nil {
		return err
	}
	r.runID = manifest.RunID
	r.logger.Info("published bundle", kitelog.RunID(r.runID), zap.String("dir", r.opts.ModelDir))
	return nil
}
