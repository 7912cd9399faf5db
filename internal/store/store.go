// Package store persists ledger records as JSON documents grouped by kind.
// Backends only move opaque documents; Repository gives typed access.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// Kind names a collection of documents.
type Kind string

const (
	KindIncomeSource   Kind = "income_source"
	KindTransaction    Kind = "transaction"
	KindExpense        Kind = "expense"
	KindDonationPayout Kind = "donation_payout"
	KindPartner        Kind = "partner"
	KindSetting        Kind = "setting"
)

// Kinds lists every kind in dependency order (reference data first).
var Kinds = []Kind{
	KindSetting,
	KindPartner,
	KindIncomeSource,
	KindTransaction,
	KindExpense,
	KindDonationPayout,
}

// Document is one stored record.
type Document struct {
	Kind      Kind            `json:"kind"`
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DocumentStore is implemented by every storage backend.
type DocumentStore interface {
	// Put creates or replaces the document kind/id.
	Put(ctx context.Context, kind Kind, id string, data []byte) error

	// Get returns the document data or ErrNotFound.
	Get(ctx context.Context, kind Kind, id string) ([]byte, error)

	// List returns all documents of kind ordered by id.
	List(ctx context.Context, kind Kind) ([]Document, error)

	// Delete removes the document or returns ErrNotFound.
	Delete(ctx context.Context, kind Kind, id string) error

	// Close releases backend resources.
	Close() error
}
