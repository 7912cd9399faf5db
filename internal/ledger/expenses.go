package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/finance"
	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/dvloznov/partner-ledger/internal/store"
)

// ExpenseRequest is an expense as submitted by a user. The spender is named
// by PartnerID, or by ByWhom (name or display name) when no id is given.
type ExpenseRequest struct {
	Amount      float64            `json:"amount"`
	Description string             `json:"description"`
	Date        domain.Date        `json:"date"`
	Category    string             `json:"category"`
	PartnerID   string             `json:"partnerId,omitempty"`
	ByWhom      string             `json:"byWhom,omitempty"`
	Type        domain.ExpenseType `json:"type"`
}

// AddExpense stores a new expense stamped with the spender's partner id.
func (s *Service) AddExpense(ctx context.Context, req ExpenseRequest) (domain.Expense, error) {
	log := logger.FromContext(ctx)

	if !validAmount(req.Amount) {
		return domain.Expense{}, fmt.Errorf("AddExpense: %v: %w", req.Amount, ErrInvalidAmount)
	}
	switch req.Type {
	case domain.ExpensePersonal, domain.ExpenseCompany:
	default:
		return domain.Expense{}, fmt.Errorf("AddExpense: %q: %w", req.Type, ErrInvalidExpenseType)
	}

	partner, err := s.resolvePartner(ctx, req.PartnerID, req.ByWhom)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("AddExpense: %w", err)
	}

	expense := domain.Expense{
		ID:          s.newID(),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
		ByWhom:      partner.Name,
		PartnerID:   partner.ID,
		Type:        req.Type,
	}
	if expense.Date.IsZero() {
		expense.Date = domain.DateOf(s.now())
	}

	if err := s.repo.Expenses.Put(ctx, expense); err != nil {
		return domain.Expense{}, fmt.Errorf("AddExpense: %w", err)
	}

	log.Info().
		Str("expense_id", expense.ID).
		Str("partner_id", expense.PartnerID).
		Str("type", string(expense.Type)).
		Float64("amount", expense.Amount).
		Msg("Expense recorded")
	return expense, nil
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	if err := s.repo.Expenses.Delete(ctx, id); err != nil {
		return fmt.Errorf("DeleteExpense: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Info().Str("expense_id", id).Msg("Expense deleted")
	return nil
}

// ListExpenses returns the expenses dated within r, oldest first.
func (s *Service) ListExpenses(ctx context.Context, r domain.DateRange) ([]domain.Expense, error) {
	all, err := s.repo.Expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListExpenses: %w", err)
	}
	out := filterExpenses(all, r)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *Service) resolvePartner(ctx context.Context, id, name string) (domain.Partner, error) {
	if id != "" {
		p, err := s.repo.Partners.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Partner{}, fmt.Errorf("%s: %w", id, ErrUnknownPartner)
		}
		return p, err
	}

	cfg, err := s.repo.PartnerConfig(ctx)
	if err != nil {
		return domain.Partner{}, err
	}
	p, ok := finance.ResolveExpenseOwner(domain.Expense{ByWhom: name}, cfg.Partners)
	if !ok {
		return domain.Partner{}, fmt.Errorf("%q: %w", name, ErrUnknownPartner)
	}
	return p, nil
}

func filterExpenses(all []domain.Expense, r domain.DateRange) []domain.Expense {
	out := make([]domain.Expense, 0, len(all))
	for _, e := range all {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
