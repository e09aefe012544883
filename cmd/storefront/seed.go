package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asaidimu/storefront/internal/cli"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Recreate the tables and load demo data",
	Long: `Drop every storefront table, create it again and load the demo users,
products and parts. All existing data is lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := store.Reset(ctx); err != nil {
			return cli.GeneralError("resetting tables", err)
		}
		if err := store.Seed(ctx); err != nil {
			return cli.GeneralError("seeding tables", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s\n", cfg.Database.Path)
		return nil
	},
}
