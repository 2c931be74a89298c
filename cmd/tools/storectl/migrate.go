package main

import (
	"github.com/spf13/cobra"

	"lunor.shop/app/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the products and users tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)
		logger.Info("migrated", "driver", cfg.DB.Driver)
		return nil
	},
}
