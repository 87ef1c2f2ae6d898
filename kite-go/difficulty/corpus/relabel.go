package corpus

import "github.com/kiteco/difficulty/kite-go/difficulty/tier"

// Relabel rewrites the class of every record with a usable score to the tier
// the thresholds assign that score. Records without a usable score keep their
// class. It returns the number of records whose class changed.
func Relabel(records []*Record, thresholds tier.Thresholds) int {
	var changed int
	for _, r := range records {
		score, reason := ParseScore(r.Score)
		if reason != "" {
			continue
		}
		if t := thresholds.Lookup(score); t != r.Class {
			r.Class = t
			changed++
		}
	}
	return changed
}

// RelabelExamples re-buckets the tier of every example from its score.
func RelabelExamples(examples []Example, thresholds tier.Thresholds) int {
	var changed int
	for i := range examples {
		if t := thresholds.Lookup(examples[i].Score); t != examples[i].Tier {
			examples[i].Tier = t
			changed++
		}
	}
	return changed
}

// Distribution counts records per class.
func Distribution(records []*Record) map[string]int {
	dist := make(map[string]int)
	for _, r := range records {
		dist[r.Class]++
	}
	return dist
}
