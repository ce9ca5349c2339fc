// Package cmd holds the sparqlbench command line.
package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand returns the sparqlbench command tree. Configuration is read
// from flags, SPARQLBENCH_* environment variables and an optional TOML file,
// in that priority order.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	g := &globals{
		v:      viper.New(),
		stderr: stderr,
	}

	rc := &cobra.Command{
		Use:   "sparqlbench",
		Short: "Benchmark Go HTTP client libraries against a SPARQL endpoint.",
		Long: `sparqlbench issues a fixed catalog of SPARQL 1.1 queries and updates
against an endpoint through several Go HTTP client libraries, and reports
per-call latency and throughput for each library and operation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setAllConfig(g.v, cmd.Flags()); err != nil {
				return err
			}
			return g.setupLogger()
		},
	}
	rc.PersistentFlags().StringP("config", "c", "", "Configuration file to read from.")
	rc.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level: debug, info, warn or error.")

	rc.AddCommand(newRunCommand(g, stdout))
	rc.AddCommand(newSummarizeCommand(g, stdin, stdout))
	rc.AddCommand(newCatalogCommand(stdout))
	rc.AddCommand(newLibrariesCommand(stdout))

	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}
