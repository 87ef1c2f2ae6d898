package bundle

import (
	"time"

	"github.com/google/uuid"
	version "github.com/hashicorp/go-version"
	"github.com/kiteco/difficulty/kite-golib/errors"
)

// FormatVersion is the layout written by this package.
const FormatVersion = "1.0.0"

// supportedFormats are the layouts this package can read.
const supportedFormats = ">= 1.0.0, < 2.0.0"

// Metrics are the held-out evaluation results of a training run.
type Metrics struct {
	TrainSize int `json:"train_size"`
	TestSize  int `json:"test_size"`
	// Accuracy of the tier classifier.
	Accuracy float64 `json:"accuracy"`
	// Regression errors of the score regressor.
	MAE      float64 `json:"mae"`
	RMSE     float64 `json:"rmse"`
	MedianAE float64 `json:"median_ae"`
	// DerivedAccuracy is the accuracy of tiers looked up from predicted scores,
	// which is what the inference service returns.
	DerivedAccuracy float64 `json:"derived_accuracy"`
	// Confusion counts classifier predictions per true tier.
	Confusion map[string]map[string]int `json:"confusion,omitempty"`
}

// Manifest describes one training run.
type Manifest struct {
	FormatVersion     string    `json:"format_version"`
	RunID             string    `json:"run_id"`
	CreatedAt         time.Time `json:"created_at"`
	Normalizer        string    `json:"normalizer"`
	ThresholdsVersion string    `json:"thresholds_version"`
	// Synthetic marks bundles trained on placeholder data.
	Synthetic bool     `json:"synthetic"`
	Examples  int      `json:"examples"`
	Features  int      `json:"features"`
	Classes   []string `json:"classes"`
	Metrics   Metrics  `json:"metrics"`
}

// NewManifest starts a manifest for a new run.
func NewManifest(normalizer, thresholdsVersion string) Manifest {
	return Manifest{
		FormatVersion:     FormatVersion,
		RunID:             uuid.New().String(),
		CreatedAt:         time.Now().UTC(),
		Normalizer:        normalizer,
		ThresholdsVersion: thresholdsVersion,
	}
}

func checkFormat(format string) error {
	v, err := version.NewVersion(format)
	if err != nil {
		return errors.Wrapf(err, "invalid format version %q", format)
	}
	c, err := version.NewConstraint(supportedFormats)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return errors.Errorf("format version %s does not satisfy %s", format, supportedFormats)
	}
	return nil
}

// Validate checks the manifest fields that do not depend on the models.
func (m Manifest) Validate() error {
	var errs errors.Errors
	errs = errors.Append(errs, checkFormat(m.FormatVersion))
	if _, err := uuid.Parse(m.RunID); err != nil {
		errs = errors.Append(errs, errors.Errorf("invalid run id %q", m.RunID))
	}
	if m.Normalizer == "" {
		errs = errors.Append(errs, errors.Errorf("manifest does not name a normalizer"))
	}
	return errors.ErrorOrNil(errs)
}
