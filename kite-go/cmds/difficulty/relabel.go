package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/kiteco/difficulty/kite-go/difficulty/corpus"
	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-golib/cmdline"
	"github.com/spf13/afero"
)

var relabelCmd = cmdline.Command{
	Name:     "relabel",
	Synopsis: "rewrite the problem_class column of a corpus from problem_score",
	Args: &relabelArgs{
		Data: defaultDataPath,
	},
}

type relabelArgs struct {
	Data       string `arg:"--data" help:"corpus CSV to relabel (env DIFFICULTY_DATA_PATH)"`
	Out        string `arg:"--out" help:"where to write the result, defaults to overwriting --data"`
	Thresholds string `arg:"--thresholds" help:"YAML tier thresholds, defaults to the built-in tiers"`
}

func (args *relabelArgs) Handle() error {
	fs := afero.NewOsFs()
	thresholds, err := tier.LoadThresholds(fs, args.Thresholds)
	if err != nil {
		return err
	}
	records, err := corpus.LoadRecords(fs, args.Data)
	if err != nil {
		return err
	}

	fmt.Println("Current distribution:")
	printDistribution(os.Stdout, records)

	changed := corpus.Relabel(records, thresholds)

	fmt.Printf("\nNew distribution (thresholds %s, %d changed):\n", thresholds.Version, changed)
	printDistribution(os.Stdout, records)

	out := args.Out
	if out == "" {
		out = args.Data
	}
	if err := corpus.WriteRecords(fs, out, records); err != nil {
		return err
	}
	fmt.Printf("\nSaved relabeled data to %s\n", out)
	return nil
}

func printDistribution(w io.Writer, records []*corpus.Record) {
	dist := corpus.Distribution(records)
	var classes []string
	for c := range dist {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		fmt.Fprintf(w, "  %-10s %6.2f%%\n", c, 100*float64(dist[c])/float64(len(records)))
	}
}
