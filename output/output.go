// Package output persists benchmark samples and summaries.
package output

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kndndrj/sparqlbench/core"
	"github.com/kndndrj/sparqlbench/core/format"
)

// Paths of the persisted tables. Empty paths are not written.
type Paths struct {
	Samples     string
	Summary     string
	SummaryJSON string
}

// SampleHeader is core.SampleHeader prefixed with the run identifier.
var SampleHeader = append(core.Header{"run_id"}, core.SampleHeader...)

// SampleRows returns the samples of a report in SampleHeader layout.
func SampleRows(report *core.Report) []core.Row {
	rows := make([]core.Row, 0, len(report.Samples))
	for _, s := range report.Samples {
		rows = append(rows, append(core.Row{report.ID}, s.Row()...))
	}
	return rows
}

// SummaryRows returns summary rows in core.SummaryHeader layout.
func SummaryRows(summary []core.SummaryRow) []core.Row {
	rows := make([]core.Row, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, s.Row())
	}
	return rows
}

// Write persists the sample table and the summary tables concurrently. The
// summary is computed from the report by the caller so it can be shared with
// other outputs.
func Write(ctx context.Context, paths Paths, report *core.Report, summary []core.SummaryRow, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	g, _ := errgroup.WithContext(ctx)

	if paths.Samples != "" {
		g.Go(func() error {
			return NewFile(paths.Samples, format.NewCSV(), logger).Write(SampleHeader, SampleRows(report))
		})
	}
	if paths.Summary != "" {
		g.Go(func() error {
			return NewFile(paths.Summary, format.NewCSV(), logger).Write(core.SummaryHeader, SummaryRows(summary))
		})
	}
	if paths.SummaryJSON != "" {
		g.Go(func() error {
			return NewFile(paths.SummaryJSON, format.NewJSON(), logger).Write(core.SummaryHeader, SummaryRows(summary))
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
