package cmd

import (
	"fmt"

	"tajwid-pintar-be/internal/config"
	"tajwid-pintar-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "tajwidctl",
	Short:         "Operator tooling for the Tajwid Pintar backend",
	Long:          color.CyanString("tajwidctl") + "\nSchema migration, knowledge seeding, password hashing and reply rendering.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command and prints the error, if any, in red.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		color.Red("error: %v", err)
	}
	return err
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(renderCmd)
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.Connection == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
	}
	return database.NewGormDBFromDSN(cfg.Database.Connection, true)
}
