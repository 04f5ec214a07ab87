package main

import (
	"errors"

	"github.com/Triaksa-Space/cookie-notice/config"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set")
		}
		db, err := config.InitDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := config.Migrate(cmd.Context(), db.DB); err != nil {
			return err
		}
		logger.Get().Info("Migrations applied")
		return nil
	},
}
