// Command storectl manages the storefront database from the shell.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"lunor.shop/app/internal/config"
	"lunor.shop/app/internal/database"
)

var rootCmd = &cobra.Command{
	Use:           "storectl",
	Short:         "Maintenance commands for the LUNOR storefront",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, addToCartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("storectl failed", "err", err)
		os.Exit(1)
	}
}

// openDB loads the environment config and opens a migrated database.
func openDB() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := database.Open(cfg.DB, logger)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}
