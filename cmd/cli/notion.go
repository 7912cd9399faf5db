package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvloznov/partner-ledger/internal/notionsync"
)

var syncNotionCmd = &cobra.Command{
	Use:   "sync-notion",
	Short: "Mirror transactions into a Notion database",
	Long: `Create or update one Notion page per transaction in the period and archive
pages whose transaction no longer exists. Requires NOTION_TOKEN and
NOTION_DB_ID.`,
	Example: `  ledger sync-notion --start-date 2025-01-01 --end-date 2025-01-31 --dry-run`,
	RunE:    runSyncNotion,
}

func init() {
	rootCmd.AddCommand(syncNotionCmd)
	addPeriodFlags(syncNotionCmd)
	syncNotionCmd.Flags().Bool("dry-run", false, "Preview changes without syncing")
}

func runSyncNotion(cmd *cobra.Command, args []string) error {
	// Timeout so the CLI doesn't hang on a slow Notion API
	ctx, cancel := commandContext("notion-sync", 10*time.Minute)
	defer cancel()

	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if err := cfg.RequireNotion(); err != nil {
		return err
	}

	svc, s, err := openLedger(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	client := notionsync.NewNotionClient(cfg.NotionToken)
	result, err := notionsync.SyncTransactions(ctx, svc, client, cfg.NotionDatabaseID, period, dryRun)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d, updated %d, archived %d, failed %d\n",
		result.Created, result.Updated, result.Deleted, result.Failed)
	if result.Failed > 0 {
		return fmt.Errorf("%d pages failed to sync", result.Failed)
	}
	return nil
}
