package ledger

import (
	"context"
	"fmt"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/finance"
	"github.com/dvloznov/partner-ledger/internal/logger"
)

// AttributionResult reports what MigrateExpenseAttribution changed.
type AttributionResult struct {
	Attributed int              `json:"attributed"`
	Unmatched  []domain.Expense `json:"unmatched"`
}

// MigrateExpenseAttribution stamps partner ids onto expenses recorded before
// ids existed, matching the free-text spender against partner names. It is
// safe to run repeatedly. With dryRun nothing is written.
func (s *Service) MigrateExpenseAttribution(ctx context.Context, dryRun bool) (AttributionResult, error) {
	log := logger.FromContext(ctx)

	expenses, err := s.repo.Expenses.List(ctx)
	if err != nil {
		return AttributionResult{}, fmt.Errorf("MigrateExpenseAttribution: %w", err)
	}
	cfg, err := s.repo.PartnerConfig(ctx)
	if err != nil {
		return AttributionResult{}, fmt.Errorf("MigrateExpenseAttribution: %w", err)
	}

	attributed, unmatched := finance.AttributeExpenses(expenses, cfg.Partners)
	if !dryRun {
		for _, e := range attributed {
			if err := s.repo.Expenses.Put(ctx, e); err != nil {
				return AttributionResult{}, fmt.Errorf("MigrateExpenseAttribution: %w", err)
			}
		}
	}

	for _, e := range unmatched {
		log.Warn().
			Str("expense_id", e.ID).
			Str("by_whom", e.ByWhom).
			Msg("Expense spender matches no partner")
	}
	log.Info().
		Int("attributed", len(attributed)).
		Int("unmatched", len(unmatched)).
		Bool("dry_run", dryRun).
		Msg("Expense attribution migration finished")

	return AttributionResult{Attributed: len(attributed), Unmatched: unmatched}, nil
}
