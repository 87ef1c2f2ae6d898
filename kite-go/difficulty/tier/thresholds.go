package tier

import (
	"math"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/montanaflynn/stats"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"
)

// Tier names used by the default thresholds.
const (
	Easy   = "Easy"
	Medium = "Medium"
	Hard   = "Hard"
)

// DefaultThresholdsVersion identifies DefaultThresholds. Bundles record the
// version their evaluation metrics were computed with.
const DefaultThresholdsVersion = "cf-rating-v2"

// Threshold closes the half-open score interval [previous bound, UpperBound)
// belonging to Tier.
type Threshold struct {
	Tier       string  `yaml:"tier" json:"tier"`
	UpperBound float64 `yaml:"upper_bound" json:"upper_bound"`
}

// Thresholds partitions the score axis into tiers. Bounds are strictly
// increasing and the last one is +Inf, so every score maps to exactly one tier.
type Thresholds struct {
	Version string      `yaml:"version" json:"version"`
	Tiers   []Threshold `yaml:"tiers" json:"tiers"`
}

// DefaultThresholds returns [0, 1300) Easy, [1300, 1900) Medium, [1900, +Inf) Hard.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Version: DefaultThresholdsVersion,
		Tiers: []Threshold{
			{Tier: Easy, UpperBound: 1300},
			{Tier: Medium, UpperBound: 1900},
			{Tier: Hard, UpperBound: math.Inf(1)},
		},
	}
}

// Validate checks that the thresholds form a total partition.
func (t Thresholds) Validate() error {
	if len(t.Tiers) == 0 {
		return errors.Errorf("thresholds %q define no tiers", t.Version)
	}
	seen := make(map[string]bool, len(t.Tiers))
	for i, th := range t.Tiers {
		switch {
		case th.Tier == "":
			return errors.Errorf("thresholds %q: tier %d has no name", t.Version, i)
		case seen[th.Tier]:
			return errors.Errorf("thresholds %q: tier %s appears twice", t.Version, th.Tier)
		case math.IsNaN(th.UpperBound):
			return errors.Errorf("thresholds %q: tier %s has a NaN bound", t.Version, th.Tier)
		case i > 0 && th.UpperBound <= t.Tiers[i-1].UpperBound:
			return errors.Errorf("thresholds %q: bound %v of %s does not exceed %v", t.Version, th.UpperBound, th.Tier, t.Tiers[i-1].UpperBound)
		}
		seen[th.Tier] = true
	}
	if last := t.Tiers[len(t.Tiers)-1]; !math.IsInf(last.UpperBound, 1) {
		return errors.Errorf("thresholds %q: last tier %s must be unbounded above, got %v", t.Version, last.Tier, last.UpperBound)
	}
	return nil
}

// Lookup returns the first tier whose upper bound exceeds score. The last tier
// is unbounded, so it also receives +Inf and NaN.
func (t Thresholds) Lookup(score float64) string {
	for _, th := range t.Tiers {
		if score < th.UpperBound {
			return th.Tier
		}
	}
	return t.Tiers[len(t.Tiers)-1].Tier
}

// ScorePlaces is the number of decimals scores are reported with.
const ScorePlaces = 2

// Assign rounds a raw score to ScorePlaces decimals and returns it with the
// tier of the rounded value, so the pair can never disagree.
func (t Thresholds) Assign(raw float64) (float64, string) {
	score, err := stats.Round(raw, ScorePlaces)
	if err != nil {
		score = raw
	}
	return score, t.Lookup(score)
}

// Names lists the tiers in increasing score order.
func (t Thresholds) Names() []string {
	names := make([]string, 0, len(t.Tiers))
	for _, th := range t.Tiers {
		names = append(names, th.Tier)
	}
	return names
}

// ParseThresholds decodes and validates YAML of the form
//
//	version: cf-rating-v2
//	tiers:
//	  - {tier: Easy, upper_bound: 1300}
//	  - {tier: Medium, upper_bound: 1900}
//	  - {tier: Hard, upper_bound: .inf}
func ParseThresholds(buf []byte) (Thresholds, error) {
	var t Thresholds
	if err := yaml.UnmarshalStrict(buf, &t); err != nil {
		return Thresholds{}, errors.Wrapf(err, "error parsing thresholds")
	}
	if t.Version == "" {
		return Thresholds{}, errors.Errorf("thresholds must carry a version")
	}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

// LoadThresholds reads thresholds from a YAML file, or returns
// DefaultThresholds when path is empty.
func LoadThresholds(fs afero.Fs, path string) (Thresholds, error) {
	if path == "" {
		return DefaultThresholds(), nil
	}
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return Thresholds{}, errors.Wrapf(err, "error reading thresholds")
	}
	t, err := ParseThresholds(buf)
	if err != nil {
		return Thresholds{}, errors.Wrapf(err, "error loading %s", path)
	}
	return t, nil
}
