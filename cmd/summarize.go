package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kndndrj/sparqlbench/core"
	"github.com/kndndrj/sparqlbench/output"
	"github.com/kndndrj/sparqlbench/report"
)

func newSummarizeCommand(g *globals, stdin io.Reader, stdout io.Writer) *cobra.Command {
	var paths output.Paths

	ccmd := &cobra.Command{
		Use:   "summarize [samples.csv]",
		Short: "Re-aggregate a persisted sample table",
		Long: `Reads a sample table written by run (from stdin if the file is "-" or
omitted), recomputes the summary and prints it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			in := stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("os.Open: %w", err)
				}
				defer f.Close()
				in = f
			}

			return summarize(c.Context(), g, in, paths, stdout)
		},
	}

	flags := ccmd.Flags()
	flags.StringVar(&paths.Summary, "summary-out", "", "Summary table file, empty to skip.")
	flags.StringVar(&paths.SummaryJSON, "summary-json", "", "Summary JSON file, empty to skip.")

	return ccmd
}

func summarize(ctx context.Context, g *globals, in io.Reader, paths output.Paths, stdout io.Writer) error {
	runID, samples, err := output.ReadSamples(in)
	if err != nil {
		return fmt.Errorf("output.ReadSamples: %w", err)
	}

	rep := &core.Report{
		ID:      runID,
		Samples: samples,
	}
	seen := make(map[string]bool)
	for _, s := range samples {
		if !seen[s.Library] {
			seen[s.Library] = true
			rep.Libraries = append(rep.Libraries, s.Library)
		}
	}

	summary := core.Aggregate(samples)

	// the samples are not rewritten
	paths.Samples = ""
	if err := output.Write(ctx, paths, rep, summary, g.logger); err != nil {
		return fmt.Errorf("output.Write: %w", err)
	}

	if err := report.Render(stdout, rep, summary); err != nil {
		return fmt.Errorf("report.Render: %w", err)
	}
	return nil
}
