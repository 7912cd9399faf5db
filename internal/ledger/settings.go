package ledger

import (
	"context"
	"fmt"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/finance"
	"github.com/dvloznov/partner-ledger/internal/logger"
)

// ListPartners returns every partner in configured order.
func (s *Service) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	cfg, err := s.repo.PartnerConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListPartners: %w", err)
	}
	return cfg.Partners, nil
}

// SavePartner creates or replaces a partner. The whole partner set is
// validated with the change applied; warnings do not block the save.
func (s *Service) SavePartner(ctx context.Context, p domain.Partner) (domain.Partner, []*finance.ValidationError, error) {
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Name
	}
	if p.JoinDate.IsZero() {
		p.JoinDate = domain.DateOf(s.now())
	}

	cfg, err := s.repo.PartnerConfig(ctx)
	if err != nil {
		return domain.Partner{}, nil, fmt.Errorf("SavePartner: %w", err)
	}
	next := make([]domain.Partner, 0, len(cfg.Partners)+1)
	replaced := false
	for _, existing := range cfg.Partners {
		if existing.ID == p.ID {
			next = append(next, p)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append(next, p)
	}

	warnings, err := finance.ValidatePartners(next)
	if err != nil {
		return domain.Partner{}, nil, fmt.Errorf("SavePartner: %w: %w", ErrInvalidConfig, err)
	}
	if err := s.repo.Partners.Put(ctx, p); err != nil {
		return domain.Partner{}, nil, fmt.Errorf("SavePartner: %w", err)
	}

	log := logger.FromContext(ctx)
	for _, w := range warnings {
		log.Warn().Str("field", w.Field).Msg(w.Message)
	}
	log.Info().
		Str("partner_id", p.ID).
		Float64("equity", p.Equity).
		Bool("active", p.IsActive).
		Msg("Partner saved")
	return p, warnings, nil
}

// ListIncomeSources returns every income source ordered by id.
func (s *Service) ListIncomeSources(ctx context.Context) ([]domain.IncomeSource, error) {
	sources, err := s.repo.IncomeSources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListIncomeSources: %w", err)
	}
	return sources, nil
}

// SaveIncomeSource validates and stores an income source. Changes apply to
// new transactions only.
func (s *Service) SaveIncomeSource(ctx context.Context, source domain.IncomeSource) (domain.IncomeSource, error) {
	if source.ID == "" {
		source.ID = s.newID()
	}
	if err := finance.ValidateIncomeSource(source); err != nil {
		return domain.IncomeSource{}, fmt.Errorf("SaveIncomeSource: %w: %w", ErrInvalidConfig, err)
	}
	if err := s.repo.IncomeSources.Put(ctx, source); err != nil {
		return domain.IncomeSource{}, fmt.Errorf("SaveIncomeSource: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("income_source_id", source.ID).
		Str("name", source.Name).
		Bool("enabled", source.Enabled).
		Msg("Income source saved")
	return source, nil
}
