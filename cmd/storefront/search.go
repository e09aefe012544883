package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/asaidimu/storefront/internal/cli"
)

var searchCmd = &cobra.Command{
	Use:   "search <prefix>",
	Short: "Find products by name prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		products, err := store.Products.SearchByName(ctx, args[0])
		if err != nil {
			return cli.GeneralError("searching products", err)
		}
		if len(products) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tOWNER")
		for _, p := range products {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", p.ID, p.Name, p.Price, p.Stock, p.Username)
		}
		return w.Flush()
	},
}
