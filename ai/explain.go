package ai

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pactician/pactician/capture"
)

// Explain writes a table of every candidate action's features,
// weights and totals for a's decision in s.
func Explain(out io.Writer, a *SwitchAgent, s capture.State) (*Decision, error) {
	d, err := a.Decide(context.Background(), s)
	if err != nil {
		return nil, err
	}
	ws := a.weights.For(d.Role)
	tw := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	fmt.Fprintf(tw, "agent %d\trole %s\n", a.cfg.Index, d.Role)
	fmt.Fprintf(tw, "feature\tweight")
	for _, sc := range d.Scores {
		fmt.Fprintf(tw, "\t%s", sc.Action)
	}
	fmt.Fprintln(tw)
	for _, f := range ws.NonZero() {
		fmt.Fprintf(tw, "%s\t%d", f, ws[f])
		for _, sc := range d.Scores {
			fmt.Fprintf(tw, "\t%d", sc.Features[f])
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "total\t")
	for _, sc := range d.Scores {
		fmt.Fprintf(tw, "\t%d", sc.Value)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "chose\t%s\t%d\n", d.Action, d.Value)
	return d, tw.Flush()
}
