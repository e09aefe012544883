package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/asaidimu/storefront/core/statement"
	"github.com/asaidimu/storefront/internal/cli"
)

var (
	renderFile  string
	renderTable string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a statement document to SQL",
	Long: `Render a YAML or JSON statement document to SQL and print it together with
the number of placeholders the caller must bind.`,
	Example: `  # Render a document
  storefront render -f top.yaml

  # Read from stdin, defaulting the table to products
  cat stmt.json | storefront render -f - --table products`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocument(cmd, renderFile)
		if err != nil {
			return cli.StatementError("reading document", err)
		}
		stmt, err := statement.ParseDocument(data)
		if err != nil {
			return cli.StatementError("parsing document", err)
		}

		sql, err := statement.NewBuilder(renderTable).Build(stmt)
		if err != nil {
			return cli.StatementError("rendering statement", err)
		}
		count, err := statement.PlaceholderCount(stmt)
		if err != nil {
			return cli.StatementError("counting placeholders", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sql)
		fmt.Fprintf(out, "-- placeholders: %d\n", count)
		return nil
	},
}

func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func init() {
	renderCmd.Flags().StringVarP(&renderFile, "file", "f", "-", "statement document, - for stdin")
	renderCmd.Flags().StringVar(&renderTable, "table", "", "table used when the document names none")
}
