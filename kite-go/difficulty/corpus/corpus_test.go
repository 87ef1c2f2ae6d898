package corpus

import (
	"strings"
	"testing"

	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `title,description,input_description,output_description,problem_score,problem_class
A,Calculate the sum of two integers.,Two integers a and b.,Sum of a and b.,800,Easy
B,Find the shortest path.,A graph.,The distance.,1450.5,Medium
C,Broken row,,,,Hard
D,Bad score,,,abc,Hard
E,Negative score,,,-5,Easy
F,No class,,,2100,
G,Infinite,,,Inf,Hard
H,Not a number,,,NaN,Hard
`

func TestProblemText(t *testing.T) {
	p := Problem{Title: "Ignored", Description: "d", InputDescription: "i", OutputDescription: "o"}
	assert.Equal(t, "d i o", p.Text())
	assert.False(t, p.Empty())
	assert.True(t, Problem{Title: "only a title", Description: "  \n"}.Empty())
}

func TestReadRecordsMissingColumns(t *testing.T) {
	records, err := ReadRecords(strings.NewReader("description,problem_score,problem_class\nSort an array.,900,Easy\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sort an array.", records[0].Description)
	assert.Equal(t, "", records[0].InputDescription)
	assert.Equal(t, "", records[0].Title)
}

func TestClean(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 8)

	examples, stats := Clean(records, CleanOptions{})
	require.Len(t, examples, 2)
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, map[DropReason]int{
		MissingScore:    1,
		NonNumericScore: 1,
		NegativeScore:   1,
		MissingTier:     1,
		NonFiniteScore:  2,
	}, stats.Dropped)
	assert.Contains(t, stats.String(), "kept 2 of 8")

	assert.Equal(t, 1450.5, examples[1].Score)
	assert.Equal(t, "Medium", examples[1].Tier)
	assert.Equal(t, "A graph.", examples[1].Problem.InputDescription)
}

func TestCleanStripHTML(t *testing.T) {
	records := []*Record{{
		Description: "<p>Given an array <code>nums</code></p>",
		Score:       "1200",
		Class:       "Easy",
	}}
	examples, _ := Clean(records, CleanOptions{StripHTML: true})
	require.Len(t, examples, 1)
	assert.NotContains(t, examples[0].Problem.Description, "<")
	assert.Contains(t, examples[0].Problem.Description, "nums")
}

func TestLoadWriteRecords(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := LoadRecords(fs, "/data/dataset.csv")
	assert.Error(t, err)

	records := Synthesize(6)
	for _, path := range []string{"/data/dataset.csv", "/data/dataset.csv.gz"} {
		require.NoError(t, WriteRecords(fs, path, records), path)
		loaded, err := LoadRecords(fs, path)
		require.NoError(t, err, path)
		assert.Equal(t, records, loaded, path)
	}
}

func TestRelabel(t *testing.T) {
	records := []*Record{
		{Score: "1250", Class: "Medium"},
		{Score: "1300", Class: "Medium"},
		{Score: "2400", Class: "Medium"},
		{Score: "n/a", Class: "Medium"},
	}
	changed := Relabel(records, tier.DefaultThresholds())
	assert.Equal(t, 2, changed)
	assert.Equal(t, []string{"Easy", "Medium", "Hard", "Medium"},
		[]string{records[0].Class, records[1].Class, records[2].Class, records[3].Class})
	assert.Equal(t, map[string]int{"Easy": 1, "Medium": 2, "Hard": 1}, Distribution(records))

	examples := []Example{{Score: 1899.99, Tier: "Hard"}, {Score: 1900, Tier: "Hard"}}
	assert.Equal(t, 1, RelabelExamples(examples, tier.DefaultThresholds()))
	assert.Equal(t, "Medium", examples[0].Tier)
}

func TestSynthesize(t *testing.T) {
	records := Synthesize(50)
	require.Len(t, records, 50)
	assert.Equal(t, records, Synthesize(50))

	examples, stats := Clean(records, CleanOptions{})
	assert.Equal(t, 50, stats.Kept)

	scores := make(map[float64]bool)
	dist := make(map[string]int)
	for _, ex := range examples {
		scores[ex.Score] = true
		dist[ex.Tier]++
		assert.Equal(t, ex.Tier, tier.DefaultThresholds().Lookup(ex.Score), "score %v", ex.Score)
	}
	assert.True(t, len(scores) > 3)
	assert.Equal(t, map[string]int{"Easy": 17, "Medium": 17, "Hard": 16}, dist)
	assert.Equal(t, "Calculate the sum of two integers.", records[0].Description)
}
