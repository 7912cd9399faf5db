package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvloznov/partner-ledger/internal/app"
	"github.com/dvloznov/partner-ledger/internal/backup"
	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/ledger"
	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/dvloznov/partner-ledger/internal/store"
	"github.com/dvloznov/partner-ledger/internal/store/inmemory"
)

// commandContext returns a context carrying the component logger and a
// timeout so no command hangs.
func commandContext(component string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := logger.WithContext(context.Background(), logger.WithComponent(component))
	return context.WithTimeout(ctx, timeout)
}

// addPeriodFlags registers --start-date and --end-date.
func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().String("start-date", "", "Start of the period (YYYY-MM-DD, default: open)")
	cmd.Flags().String("end-date", "", "End of the period (YYYY-MM-DD, default: open)")
}

// periodFromFlags reads the flags registered by addPeriodFlags.
func periodFromFlags(cmd *cobra.Command) (domain.DateRange, error) {
	startStr, _ := cmd.Flags().GetString("start-date")
	endStr, _ := cmd.Flags().GetString("end-date")

	start, err := domain.ParseDate(startStr)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid --start-date: %w", err)
	}
	end, err := domain.ParseDate(endStr)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid --end-date: %w", err)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return domain.DateRange{}, fmt.Errorf("--end-date must not be before --start-date")
	}
	return domain.DateRange{Start: start, End: end}, nil
}

// openStore opens the configured store, or an in-memory store loaded from
// a local snapshot file when --snapshot is set.
func openStore(ctx context.Context, cmd *cobra.Command) (store.DocumentStore, error) {
	path, _ := cmd.Flags().GetString("snapshot")
	if path == "" {
		return app.OpenStore(ctx, cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	snap, err := backup.Decode(f)
	if err != nil {
		return nil, err
	}
	s := inmemory.NewStore()
	if _, err := backup.Restore(ctx, s, snap); err != nil {
		return nil, err
	}
	return s, nil
}

// openLedger opens the store and wraps it in a ledger service. The caller
// closes the returned store.
func openLedger(ctx context.Context, cmd *cobra.Command) (*ledger.Service, store.DocumentStore, error) {
	s, err := openStore(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}
	return app.NewLedger(s, cfg), s, nil
}

func addSnapshotFlag(cmd *cobra.Command) {
	cmd.Flags().String("snapshot", "", "Read records from a local backup file instead of the store")
}
