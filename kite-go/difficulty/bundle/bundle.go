package bundle

import (
	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-golib/decisiontree"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/kitelog"
	"github.com/kiteco/difficulty/kite-golib/tfidf"
	"go.uber.org/zap"
)

// Bundle is the full set of fitted artifacts of one training run. A Bundle is
// never modified after it is built or loaded.
type Bundle struct {
	Manifest   Manifest
	Vectorizer *tfidf.Vectorizer
	Regressor  *decisiontree.Ensemble
	Classifier *decisiontree.Classifier
	Encoder    *tier.Encoder
}

// Validate reports every missing or inconsistent member at once. When
// normalizer is not empty it must match the normalizer the bundle was
// trained with.
func (b *Bundle) Validate(normalizer string) error {
	var errs errors.Errors
	if err := b.Manifest.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrapf(err, "manifest"))
	}
	if normalizer != "" && b.Manifest.Normalizer != normalizer {
		errs = errors.Append(errs, errors.Errorf("bundle was trained with normalizer %q, serving with %q", b.Manifest.Normalizer, normalizer))
	}

	size := -1
	if b.Vectorizer == nil {
		errs = errors.Append(errs, errors.Errorf("missing vectorizer"))
	} else if err := b.Vectorizer.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrapf(err, "vectorizer"))
	} else {
		size = b.Vectorizer.Size()
	}

	if b.Regressor == nil {
		errs = errors.Append(errs, errors.Errorf("missing regressor"))
	} else if err := b.Regressor.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrapf(err, "regressor"))
	} else if size >= 0 && b.Regressor.FeatureSize() != size {
		errs = errors.Append(errs, errors.Errorf("regressor expects %d features, vocabulary has %d", b.Regressor.FeatureSize(), size))
	}

	if b.Classifier == nil {
		errs = errors.Append(errs, errors.Errorf("missing classifier"))
	} else if err := b.Classifier.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrapf(err, "classifier"))
	} else if size >= 0 && b.Classifier.FeatureSize() != size {
		errs = errors.Append(errs, errors.Errorf("classifier expects %d features, vocabulary has %d", b.Classifier.FeatureSize(), size))
	}

	if b.Encoder == nil {
		errs = errors.Append(errs, errors.Errorf("missing tier encoder"))
	} else if err := b.Encoder.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrapf(err, "tier encoder"))
	} else if b.Classifier != nil && b.Classifier.NumClasses != b.Encoder.Size() {
		errs = errors.Append(errs, errors.Errorf("classifier has %d classes, encoder has %d", b.Classifier.NumClasses, b.Encoder.Size()))
	}

	return errors.ErrorOrNil(errs)
}

// CheckThresholds warns when the bundle was evaluated against thresholds other
// than the ones it is served with. Thresholds may change without retraining,
// so a mismatch is not an error; only the stored metrics become stale.
func (b *Bundle) CheckThresholds(version string, logger *zap.Logger) bool {
	if b.Manifest.ThresholdsVersion == version {
		return true
	}
	logger.Warn("serving with different tier thresholds than the bundle was evaluated with",
		kitelog.RunID(b.Manifest.RunID),
		zap.String("bundle_thresholds", b.Manifest.ThresholdsVersion),
		zap.String("serving_thresholds", version))
	return false
}
