package inference

import (
	"math"

	"github.com/kiteco/difficulty/kite-go/difficulty/bundle"
	"github.com/kiteco/difficulty/kite-go/difficulty/corpus"
	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-go/web/webutils"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/text"
)

// Error codes of failed predictions.
const (
	CodeEmptyInput = iota + 1
	CodeModelsUnavailable
	CodeInvalidScore
)

var (
	// ErrEmptyInput is returned when description, input and output are all blank.
	ErrEmptyInput = webutils.ErrorCode(CodeEmptyInput, "problem description, input and output are all empty")
	// ErrModelsUnavailable is returned when no bundle is loaded.
	ErrModelsUnavailable = webutils.ErrorCode(CodeModelsUnavailable, "models are not loaded")
)

// Prediction is the difficulty of one problem. Tier is always the tier the
// thresholds assign to Score.
type Prediction struct {
	Tier  string  `json:"class"`
	Score float64 `json:"score"`
}

// Service scores problems with the regressor of a loaded bundle. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	bundle     *bundle.Bundle
	thresholds tier.Thresholds
	normalizer *text.Normalizer
}

// New validates b against the normalizer and returns a Service serving it.
func New(b *bundle.Bundle, thresholds tier.Thresholds, normalizer *text.Normalizer) (*Service, error) {
	if b == nil {
		return nil, ErrModelsUnavailable
	}
	if normalizer == nil {
		return nil, errors.Errorf("normalizer is required")
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(normalizer.Version()); err != nil {
		return nil, errors.Wrapf(err, "refusing to serve bundle")
	}
	return &Service{
		bundle:     b,
		thresholds: thresholds,
		normalizer: normalizer,
	}, nil
}

// Manifest describes the bundle being served.
func (s *Service) Manifest() bundle.Manifest {
	return s.bundle.Manifest
}

// Thresholds used to derive tiers.
func (s *Service) Thresholds() tier.Thresholds {
	return s.thresholds
}

// Score predicts the difficulty score of p and derives its tier from the
// rounded score. The tier classifier is not consulted.
func (s *Service) Score(p corpus.Problem) (Prediction, error) {
	if s == nil || s.bundle == nil {
		return Prediction{}, ErrModelsUnavailable
	}
	if p.Empty() {
		return Prediction{}, ErrEmptyInput
	}

	x := s.bundle.Vectorizer.Transform(s.normalizer.Normalize(p.Text()))
	raw := s.bundle.Regressor.Evaluate(x)
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return Prediction{}, webutils.ErrorCodef(CodeInvalidScore, "regressor produced %v", raw)
	}

	score, name := s.thresholds.Assign(raw)
	return Prediction{Tier: name, Score: score}, nil
}
