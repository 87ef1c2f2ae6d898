package decisiontree

import (
	"math"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/workerpool"
)

// FitRegressor fits a squared-error gradient boosted ensemble to (x, y). The
// ensemble starts from the mean target and its outputs are not clamped.
//
// A constant target is rejected: there is nothing to learn and a model
// fitted to it would silently predict the constant for every input.
func FitRegressor(x [][]float64, y []float64, params BoostParams) (*Ensemble, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if len(x) != len(y) {
		return nil, errors.Errorf("got %d rows but %d targets", len(x), len(y))
	}
	cols, err := newColumns(x)
	if err != nil {
		return nil, err
	}

	var sum float64
	distinct := false
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("target %d is %v", i, v)
		}
		if v != y[0] {
			distinct = true
		}
		sum += v
	}
	if !distinct {
		return nil, errors.Errorf("degenerate regression target: all %d values equal %v", len(y), y[0])
	}

	pool := workerpool.New(params.workers())
	defer pool.Stop()
	gr := newGrower(x, cols, params, pool)

	base := sum / float64(len(y))
	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = base
	}
	grad := make([]float64, len(y))
	hess := make([]float64, len(y))
	for i := range hess {
		hess[i] = 1
	}

	e := &Ensemble{Bias: base}
	for round := 0; round < params.NumRounds; round++ {
		for i := range grad {
			grad[i] = pred[i] - y[i]
		}
		tree, out, err := gr.grow(grad, hess)
		if err != nil {
			return nil, errors.Wrapf(err, "round %d", round)
		}
		e.Trees = append(e.Trees, *tree)
		for i := range pred {
			pred[i] += out[i]
		}
	}
	return e, nil
}
