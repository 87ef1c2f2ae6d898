package decisiontree

import (
	"math"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/workerpool"
)

// minHessian keeps leaf weights bounded once a class probability saturates.
const minHessian = 1e-16

// Classifier is a multi-class gradient boosted model: one ensemble per class,
// the predicted class is the one with the largest margin.
type Classifier struct {
	NumClasses int        `json:"num_classes"`
	Classes    []Ensemble `json:"classes"`
}

// Margins returns the raw per-class scores for x.
func (c *Classifier) Margins(x []float64) []float64 {
	margins := make([]float64, len(c.Classes))
	for k := range c.Classes {
		margins[k] = c.Classes[k].Evaluate(x)
	}
	return margins
}

// Predict returns the class with the largest margin, the lowest class on ties.
func (c *Classifier) Predict(x []float64) int {
	margins := c.Margins(x)
	best := 0
	for k := 1; k < len(margins); k++ {
		if margins[k] > margins[best] {
			best = k
		}
	}
	return best
}

// FeatureSize is the length of the feature vectors the classifier accepts.
func (c *Classifier) FeatureSize() int {
	if len(c.Classes) == 0 {
		return 0
	}
	return c.Classes[0].FeatureSize()
}

// Validate checks the per-class ensembles.
func (c *Classifier) Validate() error {
	if c.NumClasses < 2 || len(c.Classes) != c.NumClasses {
		return errors.Errorf("classifier has %d ensembles for %d classes", len(c.Classes), c.NumClasses)
	}
	size := c.FeatureSize()
	for k := range c.Classes {
		if err := c.Classes[k].Validate(); err != nil {
			return errors.Wrapf(err, "class %d", k)
		}
		if c.Classes[k].FeatureSize() != size {
			return errors.Errorf("class %d has feature size %d, expected %d", k, c.Classes[k].FeatureSize(), size)
		}
	}
	return nil
}

// FitClassifier fits a softmax gradient boosted classifier. Labels must be
// integer codes in [0, numClasses) and at least two distinct labels must be
// present.
func FitClassifier(x [][]float64, y []int, numClasses int, params BoostParams) (*Classifier, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if numClasses < 2 {
		return nil, errors.Errorf("classifier needs at least 2 classes, got %d", numClasses)
	}
	if len(x) != len(y) {
		return nil, errors.Errorf("got %d rows but %d labels", len(x), len(y))
	}
	seen := make(map[int]struct{})
	for i, label := range y {
		if label < 0 || label >= numClasses {
			return nil, errors.Errorf("label %d of row %d is outside [0, %d)", label, i, numClasses)
		}
		seen[label] = struct{}{}
	}
	if len(seen) < 2 {
		return nil, errors.Errorf("classifier needs at least 2 distinct labels, got %d", len(seen))
	}
	cols, err := newColumns(x)
	if err != nil {
		return nil, err
	}

	pool := workerpool.New(params.workers())
	defer pool.Stop()
	gr := newGrower(x, cols, params, pool)

	n := len(y)
	margins := make([][]float64, n)
	for i := range margins {
		margins[i] = make([]float64, numClasses)
	}
	probs := make([][]float64, n)
	for i := range probs {
		probs[i] = make([]float64, numClasses)
	}
	grad := make([]float64, n)
	hess := make([]float64, n)

	c := &Classifier{
		NumClasses: numClasses,
		Classes:    make([]Ensemble, numClasses),
	}
	for round := 0; round < params.NumRounds; round++ {
		for i := range margins {
			softmax(margins[i], probs[i])
		}
		for k := 0; k < numClasses; k++ {
			for i := range grad {
				p := probs[i][k]
				grad[i] = p
				if y[i] == k {
					grad[i] = p - 1
				}
				hess[i] = math.Max(p*(1-p), minHessian)
			}
			tree, out, err := gr.grow(grad, hess)
			if err != nil {
				return nil, errors.Wrapf(err, "round %d class %d", round, k)
			}
			c.Classes[k].Trees = append(c.Classes[k].Trees, *tree)
			for i := range margins {
				margins[i][k] += out[i]
			}
		}
	}
	return c, nil
}

func softmax(margins, out []float64) {
	max := margins[0]
	for _, m := range margins[1:] {
		if m > max {
			max = m
		}
	}
	var sum float64
	for k, m := range margins {
		out[k] = math.Exp(m - max)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}
}
