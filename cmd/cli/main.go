package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dvloznov/partner-ledger/internal/config"
	"github.com/dvloznov/partner-ledger/internal/logger"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Partner ledger command-line tools",
	Long: `Command-line tools for the partnership finance ledger.

Reports, AI summaries, backups, the Notion mirror and data maintenance run
against the store selected by STORE_BACKEND.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if backend, _ := cmd.Flags().GetString("store"); backend != "" {
			cfg.StoreBackend = backend
		}
		return logger.Setup(cfg.GetLoggerConfig())
	},
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Store backend override: memory, bigquery or postgres")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cli")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
