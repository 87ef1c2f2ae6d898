package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/kiteco/difficulty/kite-go/difficulty/bundle"
	"github.com/kiteco/difficulty/kite-golib/cmdline"
	"github.com/spf13/afero"
)

var runsCmd = cmdline.Command{
	Name:     "runs",
	Synopsis: "list the runs in the bundle store, or point CURRENT at one of them",
	Args: &runsArgs{
		Models: defaultModelDir,
	},
}

type runsArgs struct {
	Models  string `arg:"--models" help:"bundle store directory (env DIFFICULTY_MODEL_DIR)"`
	Publish string `arg:"--publish" help:"make this run the current one"`
}

func (args *runsArgs) Handle() error {
	store := bundle.NewStore(afero.NewOsFs(), args.Models)
	if args.Publish != "" {
		if err := store.Publish(args.Publish); err != nil {
			return err
		}
		fmt.Printf("current run is now %s\n", args.Publish)
		return nil
	}

	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("no runs in %s\n", store.Root())
		return nil
	}
	current, err := store.Current()
	if err != nil && err != bundle.ErrNoCurrent {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\trun\tcreated\texamples\taccuracy\tmae\t")
	for _, run := range runs {
		marker := ""
		if run == current {
			marker = "*"
		}
		m, err := store.ReadManifest(run)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t(unreadable: %v)\t\t\t\t\n", marker, run, err)
			continue
		}
		examples := humanize.Comma(int64(m.Examples))
		if m.Synthetic {
			examples += " (synthetic)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.3f\t%.1f\t\n", marker, run,
			humanize.Time(m.CreatedAt), examples, m.Metrics.Accuracy, m.Metrics.MAE)
	}
	return tw.Flush()
}
