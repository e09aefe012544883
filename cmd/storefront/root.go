package main

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asaidimu/storefront/core/persistence"
	"github.com/asaidimu/storefront/internal/cli"
	"github.com/asaidimu/storefront/shop"
	"github.com/asaidimu/storefront/sqlite"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logger     = zap.NewNop()

	// Persistent flags
	cfgFile string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront data tool",
	Long: `storefront - storefront data tool

Storefront manages the shop database: it creates and seeds the tables, lists
top-rated products and users, searches products and renders statement
documents to SQL.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "completion", "version", "render":
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		logger, err = cli.NewLogger(cfg.Log, quiet)
		if err != nil {
			return cli.ConfigError("building logger", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command group IDs
const (
	groupShop    = "shop"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover storefront.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational logs")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupShop, Title: "Shop:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	seedCmd.GroupID = groupShop
	topCmd.GroupID = groupShop
	searchCmd.GroupID = groupShop
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(searchCmd)

	renderCmd.GroupID = groupUtility
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// openStore connects to the configured database and builds the shop over an
// observed executor that logs failed statements.
func openStore(ctx context.Context) (*shop.Store, *sql.DB, error) {
	db, err := sqlite.Open(ctx, cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return nil, nil, cli.DBConnectError("opening database", err)
	}

	exec, err := persistence.NewObservedExecutor(sqlite.NewInteractor(db, logger, nil), logger)
	if err != nil {
		db.Close()
		return nil, nil, cli.GeneralError("creating executor", err)
	}
	logFailure := func(ctx context.Context, e persistence.StatementEvent) error {
		fields := []zap.Field{zap.String("event", string(e.Type)), zap.String("sql", e.SQL)}
		if e.Error != nil {
			fields = append(fields, zap.String("error", *e.Error))
		}
		logger.Warn("Statement failed", fields...)
		return nil
	}
	for _, event := range []persistence.StatementEventType{persistence.QueryFailed, persistence.ExecFailed} {
		exec.RegisterSubscription(persistence.RegisterSubscriptionOptions{Event: event, Callback: logFailure})
	}

	store, err := shop.NewStore(exec, logger, &shop.Options{
		Hasher:   shop.NewBcryptHasher(cfg.Shop.BcryptCost),
		TopCount: cfg.Shop.TopCount,
	})
	if err != nil {
		db.Close()
		return nil, nil, cli.GeneralError("creating store", err)
	}
	return store, db, nil
}
