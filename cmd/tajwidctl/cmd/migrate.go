package cmd

import (
	"tajwid-pintar-be/internal/config"
	"tajwid-pintar-be/internal/model"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the knowledge schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(config.Load())
		if err != nil {
			return err
		}

		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			color.Yellow("warn: pgcrypto extension: %v", err)
		}
		if err := db.AutoMigrate(&model.KnowledgeRecord{}); err != nil {
			return err
		}

		color.Green("✅ knowledge_records is up to date")
		return nil
	},
}
