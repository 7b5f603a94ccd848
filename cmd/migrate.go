package cmd

import (
	"fmt"

	"item-simulator/core/config"
	"item-simulator/core/database"
	"item-simulator/core/logger"

	accountmodels "item-simulator/feature/account/models"
	charmodels "item-simulator/feature/character/models"
	itemmodels "item-simulator/feature/item/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the game database schema",
	Long:  `Runs GORM auto-migration for the account, character, container and item tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		err = db.AutoMigrate(
			&accountmodels.Account{},
			&charmodels.Character{},
			&charmodels.Inventory{},
			&charmodels.Equipment{},
			&itemmodels.Item{},
		)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		logg.Info("Migration complete", zap.String("database", cfg.Database.Name))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
