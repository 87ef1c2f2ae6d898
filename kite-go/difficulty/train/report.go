package train

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
)

// WriteReport prints the evaluation of the run. Runs on synthetic data are
// headed by a warning banner.
func (r *Result) WriteReport(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 4, 4, 2, ' ', 0)
	if r.Synthetic {
		fmt.Fprintln(tw, "==================================================================")
		fmt.Fprintln(tw, "SYNTHETIC DATA: no corpus was found, these metrics are meaningless")
		fmt.Fprintln(tw, "==================================================================")
	} else {
		fmt.Fprintf(tw, "corpus\t%s\n", r.DataPath)
	}
	fmt.Fprintf(tw, "run\t%s\n", r.RunID)
	fmt.Fprintf(tw, "rows\t%s kept of %s\n", humanize.Comma(int64(r.Clean.Kept)), humanize.Comma(int64(r.Clean.Total)))
	if r.Relabeled > 0 {
		fmt.Fprintf(tw, "relabeled\t%s (thresholds %s)\n", humanize.Comma(int64(r.Relabeled)), r.Thresholds.Version)
	}
	fmt.Fprintf(tw, "train / test\t%s / %s\n", humanize.Comma(int64(r.Metrics.TrainSize)), humanize.Comma(int64(r.Metrics.TestSize)))
	fmt.Fprintf(tw, "features\t%s\n", humanize.Comma(int64(r.Features)))
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "classifier accuracy\t%.4f\n", r.Metrics.Accuracy)
	fmt.Fprintf(tw, "derived tier accuracy\t%.4f\n", r.Metrics.DerivedAccuracy)
	fmt.Fprintf(tw, "score MAE\t%s\n", humanize.FormatFloat("#,###.##", r.Metrics.MAE))
	fmt.Fprintf(tw, "score RMSE\t%s\n", humanize.FormatFloat("#,###.##", r.Metrics.RMSE))
	fmt.Fprintf(tw, "score median AE\t%s\n", humanize.FormatFloat("#,###.##", r.Metrics.MedianAE))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Metrics.Confusion) > 0 {
		fmt.Fprintln(w, "\nconfusion (rows: true tier, columns: predicted tier)")
		names := r.confusionNames()
		tw = tabwriter.NewWriter(w, 4, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprint(tw, "\t")
		for _, n := range names {
			fmt.Fprintf(tw, "%s\t", n)
		}
		fmt.Fprintln(tw)
		for _, actual := range names {
			fmt.Fprintf(tw, "%s\t", actual)
			for _, predicted := range names {
				fmt.Fprintf(tw, "%d\t", r.Metrics.Confusion[actual][predicted])
			}
			fmt.Fprintln(tw)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(r.Durations) > 0 {
		fmt.Fprintf(w, "\ntimings\n%s", r.Durations)
	}
	return nil
}

// confusionNames orders tiers by the thresholds, then any others lexically.
func (r *Result) confusionNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range r.Thresholds.Names() {
		seen[n] = true
		names = append(names, n)
	}
	var extra []string
	for _, n := range r.Classes {
		if !seen[n] {
			seen[n] = true
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
