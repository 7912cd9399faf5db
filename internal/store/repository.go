package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

const donationSettingID = "donation"

// Setting is a named configuration document.
type Setting struct {
	ID       string                 `json:"id"`
	Donation *domain.DonationConfig `json:"donation,omitempty"`
}

// Repository groups the typed collections of the ledger.
type Repository struct {
	store DocumentStore

	IncomeSources   *Collection[domain.IncomeSource]
	Transactions    *Collection[domain.Transaction]
	Expenses        *Collection[domain.Expense]
	DonationPayouts *Collection[domain.DonationPayout]
	Partners        *Collection[domain.Partner]
	Settings        *Collection[Setting]
}

// NewRepository wraps a document store.
func NewRepository(s DocumentStore) *Repository {
	return &Repository{
		store:           s,
		IncomeSources:   NewCollection(s, KindIncomeSource, func(v domain.IncomeSource) string { return v.ID }),
		Transactions:    NewCollection(s, KindTransaction, func(v domain.Transaction) string { return v.ID }),
		Expenses:        NewCollection(s, KindExpense, func(v domain.Expense) string { return v.ID }),
		DonationPayouts: NewCollection(s, KindDonationPayout, func(v domain.DonationPayout) string { return v.ID }),
		Partners:        NewCollection(s, KindPartner, func(v domain.Partner) string { return v.ID }),
		Settings:        NewCollection(s, KindSetting, func(v Setting) string { return v.ID }),
	}
}

// Store returns the underlying document store.
func (r *Repository) Store() DocumentStore {
	return r.store
}

// Close closes the underlying store.
func (r *Repository) Close() error {
	return r.store.Close()
}

// DonationConfig returns the stored donation policy. A ledger that never
// saved one gets the disabled default.
func (r *Repository) DonationConfig(ctx context.Context) (domain.DonationConfig, error) {
	s, err := r.Settings.Get(ctx, donationSettingID)
	if errors.Is(err, ErrNotFound) || (err == nil && s.Donation == nil) {
		return domain.DonationConfig{TaxPreference: domain.DonateBeforeTax}, nil
	}
	if err != nil {
		return domain.DonationConfig{}, fmt.Errorf("DonationConfig: %w", err)
	}
	return *s.Donation, nil
}

// SaveDonationConfig replaces the donation policy.
func (r *Repository) SaveDonationConfig(ctx context.Context, cfg domain.DonationConfig) error {
	return r.Settings.Put(ctx, Setting{ID: donationSettingID, Donation: &cfg})
}

// PartnerConfig returns all partners ordered by join date, then id. The
// order is stable so aggregation visits partners deterministically.
func (r *Repository) PartnerConfig(ctx context.Context) (domain.PartnerConfig, error) {
	partners, err := r.Partners.List(ctx)
	if err != nil {
		return domain.PartnerConfig{}, fmt.Errorf("PartnerConfig: %w", err)
	}
	sort.SliceStable(partners, func(i, j int) bool {
		if partners[i].JoinDate != partners[j].JoinDate {
			return partners[i].JoinDate.Before(partners[j].JoinDate)
		}
		return partners[i].ID < partners[j].ID
	})
	return domain.PartnerConfig{Partners: partners}, nil
}
