package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kndndrj/sparqlbench/adapters"
	"github.com/kndndrj/sparqlbench/catalog"
	"github.com/kndndrj/sparqlbench/core"
	"github.com/kndndrj/sparqlbench/core/format"
)

func newCatalogCommand(stdout io.Writer) *cobra.Command {
	var showText bool

	ccmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the benchmark operations",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			header := core.Header{"name", "category", "method", "expect", "prepare", "reset"}
			if showText {
				header = append(header, "text")
			}

			var rows []core.Row
			for _, op := range catalog.Default() {
				row := core.Row{op.Name, string(op.Category), op.Method, op.Expect.String(), op.Prepare != "", op.Reset != ""}
				if showText {
					row = append(row, op.Text)
				}
				rows = append(rows, row)
			}

			return printTable(stdout, header, rows)
		},
	}
	ccmd.Flags().BoolVar(&showText, "text", false, "Include the query or update text.")

	return ccmd
}

func newLibrariesCommand(stdout io.Writer) *cobra.Command {
	var asJSON bool

	lcmd := &cobra.Command{
		Use:   "libraries",
		Short: "List the benchmarked libraries and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if asJSON {
				var params []*core.ClientParams
				for _, name := range adapters.Libraries() {
					params = append(params, adapters.DefaultParams(name))
				}
				out, err := json.MarshalIndent(params, "", "  ")
				if err != nil {
					return fmt.Errorf("json.MarshalIndent: %w", err)
				}
				_, err = fmt.Fprintln(stdout, string(out))
				return err
			}

			header := core.Header{"library", "connect timeout", "read timeout", "total timeout", "pool size"}

			var rows []core.Row
			for _, name := range adapters.Libraries() {
				p := adapters.DefaultParams(name)
				rows = append(rows, core.Row{name, p.ConnectTimeout, p.ReadTimeout, p.TotalTimeout, p.PoolSize})
			}

			return printTable(stdout, header, rows)
		},
	}
	lcmd.Flags().BoolVar(&asJSON, "json", false, "Print the default client parameters as JSON.")

	return lcmd
}

func printTable(w io.Writer, header core.Header, rows []core.Row) error {
	out, err := format.NewTable().Format(header, rows)
	if err != nil {
		return fmt.Errorf("Table.Format: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
