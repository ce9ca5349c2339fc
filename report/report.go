// Package report renders the text summary of a benchmark run.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/kndndrj/sparqlbench/core"
	"github.com/kndndrj/sparqlbench/core/format"
)

var (
	summaryHeader = core.Header{
		"library", "operation", "category", "ok", "failed",
		"mean ms", "p50 ms", "p95 ms", "p99 ms", "req/s", "bytes",
	}
	totalsHeader  = core.Header{"library", "operations", "failed", "mean ms", "req/s"}
	leadersHeader = core.Header{"operation", "fastest", "req/s", "speedup"}
	splitHeader   = core.Header{"library", "read mean ms", "write mean ms"}
)

// Render writes the run header and the summary, totals, leader and
// read/write tables to w. Report may be nil when only samples are known.
func Render(w io.Writer, rep *core.Report, summary []core.SummaryRow) error {
	var b strings.Builder

	if rep != nil {
		writeRunHeader(&b, rep)
	}

	sections := []struct {
		title  string
		header core.Header
		rows   []core.Row
	}{
		{"Summary", summaryHeader, summaryRows(summary)},
		{"Libraries", totalsHeader, totalRows(LibraryTotals(summary))},
		{"Fastest library per operation", leadersHeader, leaderRows(Leaders(summary))},
		{"Reads vs writes", splitHeader, splitRows(ReadWriteSplit(summary))},
	}

	for _, s := range sections {
		if len(s.rows) == 0 {
			continue
		}
		tf := format.NewTable()
		tf.Title = s.title
		out, err := tf.Format(s.header, s.rows)
		if err != nil {
			return fmt.Errorf("tf.Format: %w", err)
		}
		b.Write(out)
		b.WriteString("\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}

func writeRunHeader(b *strings.Builder, rep *core.Report) {
	fmt.Fprintf(b, "run %s\n", rep.ID)
	if !rep.StartedAt.IsZero() && !rep.FinishedAt.IsZero() {
		fmt.Fprintf(b, "duration %s\n", rep.FinishedAt.Sub(rep.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintf(b, "libraries %s\n", strings.Join(rep.Libraries, ", "))

	if len(rep.Skipped) > 0 {
		names := make([]string, 0, len(rep.Skipped))
		for name := range rep.Skipped {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(b, "skipped %s: %s\n", name, rep.Skipped[name])
		}
	}
	b.WriteString("\n")
}

func summaryRows(summary []core.SummaryRow) []core.Row {
	rows := make([]core.Row, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, core.Row{
			s.Library, s.Operation, string(s.Category), s.Successes, s.Failures,
			s.MeanMs, s.P50Ms, s.P95Ms, s.P99Ms, s.RequestsPerSecond, s.ResponseSize,
		})
	}
	return rows
}

func totalRows(totals []LibraryTotal) []core.Row {
	rows := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, core.Row{t.Library, t.Operations, t.Failures, t.MeanMs, t.RequestsPerSecond})
	}
	return rows
}

func leaderRows(leaders []Leader) []core.Row {
	rows := make([]core.Row, 0, len(leaders))
	for _, l := range leaders {
		rows = append(rows, core.Row{l.Operation, l.Library, l.RequestsPerSecond, l.Speedup})
	}
	return rows
}

func splitRows(splits []Split) []core.Row {
	rows := make([]core.Row, 0, len(splits))
	for _, s := range splits {
		rows = append(rows, core.Row{s.Library, s.ReadMeanMs, s.WriteMeanMs})
	}
	return rows
}
