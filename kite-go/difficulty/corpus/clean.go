package corpus

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kiteco/difficulty/kite-golib/text"
)

// DropReason explains why Clean discarded a record.
type DropReason string

// Reasons a record is dropped.
const (
	MissingScore    DropReason = "missing_score"
	NonNumericScore DropReason = "non_numeric_score"
	NonFiniteScore  DropReason = "non_finite_score"
	NegativeScore   DropReason = "negative_score"
	MissingTier     DropReason = "missing_tier"
)

// CleanOptions controls Clean.
type CleanOptions struct {
	// StripHTML removes markup from the text fields.
	StripHTML bool
}

// CleanStats counts what Clean kept and dropped.
type CleanStats struct {
	Total   int
	Kept    int
	Dropped map[DropReason]int
}

// String summarizes the stats, e.g. "kept 48 of 50 (missing_tier=2)".
func (s CleanStats) String() string {
	var reasons []string
	for r, n := range s.Dropped {
		reasons = append(reasons, fmt.Sprintf("%s=%d", r, n))
	}
	sort.Strings(reasons)
	if len(reasons) == 0 {
		return fmt.Sprintf("kept %d of %d", s.Kept, s.Total)
	}
	return fmt.Sprintf("kept %d of %d (%s)", s.Kept, s.Total, strings.Join(reasons, ", "))
}

// ParseScore parses a difficulty score, reporting why it is unusable if so.
func ParseScore(s string) (float64, DropReason) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, MissingScore
	}
	score, err := strconv.ParseFloat(s, 64)
	switch {
	case err != nil:
		return 0, NonNumericScore
	case math.IsNaN(score) || math.IsInf(score, 0):
		return 0, NonFiniteScore
	case score < 0:
		return 0, NegativeScore
	}
	return score, ""
}

// Clean turns records into examples, dropping rows whose score is missing,
// non-numeric, non-finite or negative, and rows without a tier. Dropping a row
// is never an error.
func Clean(records []*Record, opts CleanOptions) ([]Example, CleanStats) {
	stats := CleanStats{
		Total:   len(records),
		Dropped: make(map[DropReason]int),
	}
	var examples []Example
	for _, r := range records {
		score, reason := ParseScore(r.Score)
		if reason == "" && strings.TrimSpace(r.Class) == "" {
			reason = MissingTier
		}
		if reason != "" {
			stats.Dropped[reason]++
			continue
		}

		p := r.Problem()
		if opts.StripHTML {
			p.Title = text.StripHTML(p.Title)
			p.Description = text.StripHTML(p.Description)
			p.InputDescription = text.StripHTML(p.InputDescription)
			p.OutputDescription = text.StripHTML(p.OutputDescription)
		}
		examples = append(examples, Example{
			Problem: p,
			Score:   score,
			Tier:    strings.TrimSpace(r.Class),
		})
	}
	stats.Kept = len(examples)
	return examples, stats
}
