package train

import (
	"math"

	"github.com/kiteco/difficulty/kite-go/difficulty/bundle"
	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-golib/decisiontree"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/montanaflynn/stats"
)

// evaluate scores the held-out rows with both models.
func evaluate(reg *decisiontree.Ensemble, clf *decisiontree.Classifier, enc *tier.Encoder,
	thresholds tier.Thresholds, x [][]float64, scores []float64, tiers []string) (bundle.Metrics, error) {

	if len(x) == 0 {
		return bundle.Metrics{}, errors.Errorf("no held-out rows to evaluate")
	}

	m := bundle.Metrics{
		TestSize:  len(x),
		Confusion: make(map[string]map[string]int),
	}

	var correct, derivedCorrect int
	absErrs := make([]float64, len(x))
	sqErrs := make([]float64, len(x))
	for i, row := range x {
		predicted := enc.Decode(clf.Predict(row))
		if predicted == tiers[i] {
			correct++
		}
		if m.Confusion[tiers[i]] == nil {
			m.Confusion[tiers[i]] = make(map[string]int)
		}
		m.Confusion[tiers[i]][predicted]++

		raw := reg.Evaluate(row)
		if _, derived := thresholds.Assign(raw); derived == tiers[i] {
			derivedCorrect++
		}
		diff := raw - scores[i]
		absErrs[i] = math.Abs(diff)
		sqErrs[i] = diff * diff
	}

	m.Accuracy = float64(correct) / float64(len(x))
	m.DerivedAccuracy = float64(derivedCorrect) / float64(len(x))

	var err error
	if m.MAE, err = stats.Mean(absErrs); err != nil {
		return bundle.Metrics{}, errors.Wrapf(err, "mean absolute error")
	}
	if m.MedianAE, err = stats.Median(absErrs); err != nil {
		return bundle.Metrics{}, errors.Wrapf(err, "median absolute error")
	}
	mse, err := stats.Mean(sqErrs)
	if err != nil {
		return bundle.Metrics{}, errors.Wrapf(err, "mean squared error")
	}
	m.RMSE = math.Sqrt(mse)

	for _, v := range []float64{m.MAE, m.MedianAE, m.RMSE} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return bundle.Metrics{}, errors.Errorf("regressor produced non-finite errors")
		}
	}
	return m, nil
}
