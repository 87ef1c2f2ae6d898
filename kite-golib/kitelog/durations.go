package kitelog

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
)

type duration struct {
	name     string
	duration time.Duration
}

// Durations tracks durations
type Durations []duration

// Record records a duration
func (t *Durations) Record(name string, d time.Duration) {
	*t = append(*t, duration{name, d})
}

// Total is the sum of every recorded duration.
func (t Durations) Total() time.Duration {
	var total time.Duration
	for _, entry := range t {
		total += entry.duration
	}
	return total
}

// String renders the durations as an aligned table.
func (t Durations) String() string {
	var b bytes.Buffer
	tw := tabwriter.NewWriter(&b, 4, 4, 0, ' ', 0)
	for _, entry := range t {
		fmt.Fprintf(tw, "   %s\t%s\n", entry.name, entry.duration)
	}
	tw.Flush()
	return b.String()
}

// Flush writes one debug line per recorded duration to the logger and resets
// the tracker.
func (t *Durations) Flush(l *zap.Logger) {
	for _, entry := range *t {
		l.Debug("stage timing", Phase(entry.name), zap.Duration("duration", entry.duration))
	}
	*t = nil
}
