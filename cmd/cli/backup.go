package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvloznov/partner-ledger/internal/app"
	"github.com/dvloznov/partner-ledger/internal/backup"
	"github.com/dvloznov/partner-ledger/internal/gcsuploader"
	"github.com/dvloznov/partner-ledger/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export every record to a JSON snapshot",
	Long: `Export every ledger record to one JSON snapshot. By default the snapshot is
uploaded to gs://$GCS_BUCKET/backups/; --out writes a local file instead.`,
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <gs://bucket/object | file>",
	Short: "Load a snapshot into the store",
	Long: `Write every record of a snapshot into the configured store. Records with the
same kind and id are replaced; others are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	backupCmd.Flags().String("out", "", "Write the snapshot to this local file")
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext("backup", 10*time.Minute)
	defer cancel()

	out, _ := cmd.Flags().GetString("out")

	s, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if out != "" {
		snap, err := backup.Export(ctx, s, time.Now())
		if err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		if err := backup.Encode(f, snap); err != nil {
			return err
		}
		fmt.Printf("Wrote %d records to %s\n", len(snap.Documents), out)
		return nil
	}

	if err := cfg.RequireBackups(); err != nil {
		return err
	}
	objects, err := gcsuploader.NewClient(ctx)
	if err != nil {
		return err
	}
	defer objects.Close()

	uri, err := backup.NewService(s, objects, cfg.GCSBucket).Backup(ctx)
	if err != nil {
		return err
	}
	fmt.Println(uri)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext("restore", 10*time.Minute)
	defer cancel()

	s, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := restoreSnapshot(ctx, s, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Restored %d records\n", n)
	return nil
}

func restoreSnapshot(ctx context.Context, s store.DocumentStore, source string) (int, error) {
	if strings.HasPrefix(source, "gs://") {
		objects, err := gcsuploader.NewClient(ctx)
		if err != nil {
			return 0, err
		}
		defer objects.Close()
		return backup.NewService(s, objects, "").RestoreFrom(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", source, err)
	}
	defer f.Close()

	snap, err := backup.Decode(f)
	if err != nil {
		return 0, err
	}
	return backup.Restore(ctx, s, snap)
}
