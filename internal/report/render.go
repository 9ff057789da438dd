package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ruleWidth = 60

// Render writes the human-readable summary to w.
func (s *Summary) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintf(bw, "\n✅ Cleaned dataset saved: %s\n", s.OutputPath)
	fmt.Fprintf(bw, "📊 Total clean rows: %d\n", s.Stats.Total)

	if s.Output != nil {
		fmt.Fprintf(bw, "🔏 sha256 %s (%d bytes)\n", s.Output.ShortHash(), s.Output.Size)
	}

	fmt.Fprintf(bw, "\n%s\nROWS REMOVED\n%s\n", rule, rule)
	fmt.Fprintf(bw, "Loaded (%s parser): %d", s.Strategy, s.Loaded)

	if s.Malformed > 0 {
		fmt.Fprintf(bw, ", malformed lines: %d", s.Malformed)
	}

	fmt.Fprintln(bw)

	labels := make([]string, len(s.Stages))
	for i, st := range s.Stages {
		labels[i] = st.Name
	}

	width := maxWidth(labels)
	for _, st := range s.Stages {
		fmt.Fprintf(bw, "  - %s : %d\n", runewidth.FillRight(st.Name, width), st.Removed)
	}

	fmt.Fprintf(bw, "\n%s\nDATASET STATISTICS\n%s\n", rule, rule)
	fmt.Fprintf(bw, "Total questions: %d\n", s.Stats.Total)
	fmt.Fprintf(bw, "\nMean character lengths:\n")

	labels = labels[:0]
	for _, m := range s.Stats.Means {
		labels = append(labels, m.Field)
	}

	width = maxWidth(labels)
	for _, m := range s.Stats.Means {
		fmt.Fprintf(bw, "  - %s : %.0f\n", runewidth.FillRight(m.Field, width), m.Mean)
	}

	if len(s.Stats.Samples) > 0 {
		fmt.Fprintf(bw, "\nFirst %d questions:\n", len(s.Stats.Samples))

		for i, title := range s.Stats.Samples {
			fmt.Fprintf(bw, "  %d. %s\n", i+1, title)
		}
	}

	fmt.Fprintf(bw, "\n%s\n", rule)

	return bw.Flush()
}

func maxWidth(labels []string) int {
	width := 0
	for _, l := range labels {
		width = max(width, runewidth.StringWidth(l))
	}

	return width
}
