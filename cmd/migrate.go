package cmd

import (
	"errors"

	"github.com/sidhant-sriv/roomshare-api/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.InMemory {
			return errors.New("migrate needs a database, not --in-memory")
		}
		logger := cfg.Logger()

		gdb, err := db.Connect(cfg.DSN(), cfg.DBDebug, logger)
		if err != nil {
			return err
		}
		if err := db.MakeMigration(gdb, logger); err != nil {
			return err
		}
		logger.Info("schema up to date")
		return nil
	},
}
