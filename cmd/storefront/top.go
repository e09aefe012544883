package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/asaidimu/storefront/internal/cli"
)

var topCount int

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List top-rated products and users",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		products, err := store.Products.TopRated(ctx, topCount)
		if err != nil {
			return cli.GeneralError("listing products", err)
		}
		users, err := store.Users.TopRated(ctx, topCount)
		if err != nil {
			return cli.GeneralError("listing users", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tOWNER\tRATING\tREVIEWS")
		for _, p := range products {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\n", p.Name, p.Username, p.Rating(), p.ReviewCount)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "USER\tRATING\tREVIEWS\t")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%.1f\t%d\t\n", u.Username, u.Rating(), u.ReviewCount)
		}
		return w.Flush()
	},
}

func init() {
	topCmd.Flags().IntVarP(&topCount, "count", "n", 0, "entries per list (default: shop.top_count)")
}
