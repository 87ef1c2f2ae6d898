package corpus

import (
	"fmt"
	"strconv"
)

var syntheticProblems = []struct {
	description string
	class       string
	base        int
}{
	{"Calculate the sum of two integers.", "Easy", 800},
	{"Find the shortest path in a graph using BFS.", "Medium", 1400},
	{"Determine if a string is a palindrome using recursion.", "Hard", 2000},
}

// Synthesize returns a deterministic placeholder corpus of n records cycling
// through three problem templates, one per tier. Scores step by 100 within
// each tier so the regression target is never constant.
//
// Synthetic data is only for exercising the pipeline end to end; models
// trained on it are meaningless.
func Synthesize(n int) []*Record {
	records := make([]*Record, 0, n)
	for i := 0; i < n; i++ {
		p := syntheticProblems[i%len(syntheticProblems)]
		score := p.base + (i/len(syntheticProblems))%5*100
		records = append(records, &Record{
			Title:             fmt.Sprintf("Problem %d", i),
			Description:       p.description,
			InputDescription:  "Two integers a and b.",
			OutputDescription: "Sum of a and b.",
			Score:             strconv.Itoa(score),
			Class:             p.class,
		})
	}
	return records
}
