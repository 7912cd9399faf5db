// Package app builds the shared services of the ledger binaries from
// configuration.
package app

import (
	"context"
	"fmt"

	"github.com/dvloznov/partner-ledger/internal/config"
	infraBQ "github.com/dvloznov/partner-ledger/internal/infra/bigquery"
	"github.com/dvloznov/partner-ledger/internal/infra/postgres"
	"github.com/dvloznov/partner-ledger/internal/ledger"
	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/dvloznov/partner-ledger/internal/rates"
	"github.com/dvloznov/partner-ledger/internal/store"
	"github.com/dvloznov/partner-ledger/internal/store/inmemory"
)

// OpenStore opens the document store selected by cfg.StoreBackend.
func OpenStore(ctx context.Context, cfg *config.Config) (store.DocumentStore, error) {
	log := logger.FromContext(ctx)

	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		log.Warn().Msg("Using in-memory store - data is lost on exit")
		return inmemory.NewStore(), nil
	case config.BackendBigQuery:
		s, err := infraBQ.NewRecordStore(ctx, cfg.GoogleCloudProject, cfg.BigQueryDataset)
		if err != nil {
			return nil, fmt.Errorf("OpenStore: %w", err)
		}
		log.Info().
			Str("project", cfg.GoogleCloudProject).
			Str("dataset", cfg.BigQueryDataset).
			Msg("Using BigQuery store")
		return s, nil
	case config.BackendPostgres:
		s, err := postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("OpenStore: %w", err)
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("OpenStore: %w", err)
		}
		log.Info().Msg("Using Postgres store")
		return s, nil
	default:
		return nil, fmt.Errorf("OpenStore: unknown store backend %q", cfg.StoreBackend)
	}
}

// NewLedger wraps s in a ledger service using the configured fallback rate.
func NewLedger(s store.DocumentStore, cfg *config.Config) *ledger.Service {
	return ledger.NewService(store.NewRepository(s), rates.NewStatic(cfg.USDToPKRRate))
}
