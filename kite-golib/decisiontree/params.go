package decisiontree

import (
	"math"
	"runtime"

	"github.com/kiteco/difficulty/kite-golib/errors"
)

// BoostParams configures gradient boosting.
type BoostParams struct {
	// NumRounds is the number of boosting rounds. The regressor adds one tree
	// per round, the classifier one tree per class per round.
	NumRounds int
	// LearningRate shrinks every leaf weight.
	LearningRate float64
	// MaxDepth bounds the number of splits on any root-to-leaf path.
	MaxDepth int
	// Lambda is the L2 penalty on leaf weights.
	Lambda float64
	// MinChildWeight is the smallest hessian sum allowed in a child.
	MinChildWeight float64
	// MinSplitGain is the loss reduction a split must exceed.
	MinSplitGain float64
	// Workers is the number of goroutines used for split search.
	Workers int
}

// DefaultBoostParams returns 100 rounds of depth 6 trees with learning rate 0.1.
func DefaultBoostParams() BoostParams {
	return BoostParams{
		NumRounds:      100,
		LearningRate:   0.1,
		MaxDepth:       6,
		Lambda:         1,
		MinChildWeight: 1,
		Workers:        runtime.NumCPU(),
	}
}

func (p BoostParams) validate() error {
	switch {
	case p.NumRounds < 1:
		return errors.Errorf("number of rounds must be positive, got %d", p.NumRounds)
	case !(p.LearningRate > 0) || math.IsInf(p.LearningRate, 0):
		return errors.Errorf("learning rate must be positive, got %v", p.LearningRate)
	case p.MaxDepth < 1:
		return errors.Errorf("max depth must be positive, got %d", p.MaxDepth)
	case p.Lambda < 0:
		return errors.Errorf("lambda must be non-negative, got %v", p.Lambda)
	case p.MinChildWeight < 0:
		return errors.Errorf("min child weight must be non-negative, got %v", p.MinChildWeight)
	case p.MinSplitGain < 0:
		return errors.Errorf("min split gain must be non-negative, got %v", p.MinSplitGain)
	}
	return nil
}

func (p BoostParams) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}
