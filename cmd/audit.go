package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"item-simulator/core/config"
	"item-simulator/core/database"
	"item-simulator/core/logger"
	"item-simulator/feature/audit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var auditJSONFlag bool

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run consistency checks against the game database",
	Long: `Recomputes item placements, character stats and balances from scratch
and reports any divergence from the stored values. Exits non-zero when the
audit finds inconsistencies.`,
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

		report, err := audit.NewService(db, logg).Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("audit failed: %w", err)
		}

		if auditJSONFlag {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			logg.Info("Audit finished",
				zap.Bool("passed", report.Passed),
				zap.Int("checked_items", report.CheckedItems),
				zap.Int("checked_characters", report.CheckedCharacters),
				zap.Int("placement_violations", len(report.PlacementViolations)),
				zap.Int("dangling_references", len(report.DanglingReferences)),
				zap.Int("stat_mismatches", len(report.StatMismatches)),
				zap.Int("negative_balances", len(report.NegativeBalances)),
				zap.Int("schema_errors", len(report.SchemaErrors)),
			)
		}

		if !report.Passed {
			return fmt.Errorf("audit found inconsistencies")
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().BoolVar(&auditJSONFlag, "json", false, "Print the full report as JSON")
	RootCmd.AddCommand(auditCmd)
}
