package cmd

import (
	"fmt"
	"os"

	"item-simulator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "item-simulator",
	Short: "Item Simulator Service",
	Long: `Item Simulator is the game backend for accounts, characters and items.
Its core is the item ownership engine: atomic transitions between the shop
pool, character inventories and equipped slots, with money and stat effects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives readable ISO8601 output for
		// a CLI failure, regardless of the configured server format.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
