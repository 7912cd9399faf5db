// Package postgres is the gorm-backed implementation of store.DocumentStore.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dvloznov/partner-ledger/internal/store"
)

// Record is one stored document. The JSON body lives in a jsonb column so it
// can be queried ad hoc from psql.
type Record struct {
	Kind      string `gorm:"primaryKey;size:64"`
	ID        string `gorm:"primaryKey;size:128"`
	Data      string `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the gorm default.
func (Record) TableName() string {
	return "records"
}

// RecordStore stores documents in Postgres.
type RecordStore struct {
	db *gorm.DB
}

// Open connects to dsn.
func Open(dsn string) (*RecordStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("Open: connecting to postgres: %w", err)
	}
	return New(db), nil
}

// New wraps an existing gorm connection.
func New(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Migrate creates or updates the records table.
func (s *RecordStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("Migrate: %w", err)
	}
	return nil
}

// Put implements store.DocumentStore as an upsert on (kind, id).
func (s *RecordStore) Put(ctx context.Context, kind store.Kind, id string, data []byte) error {
	rec := Record{Kind: string(kind), ID: id, Data: string(data)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("Put %s %s: %w", kind, id, err)
	}
	return nil
}

// Get implements store.DocumentStore.
func (s *RecordStore) Get(ctx context.Context, kind store.Kind, id string) ([]byte, error) {
	var rec Record
	err := s.db.WithContext(ctx).
		Where("kind = ? AND id = ?", string(kind), id).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get %s %s: %w", kind, id, err)
	}
	return []byte(rec.Data), nil
}

// List implements store.DocumentStore.
func (s *RecordStore) List(ctx context.Context, kind store.Kind) ([]store.Document, error) {
	var recs []Record
	err := s.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("List %s: %w", kind, err)
	}

	docs := make([]store.Document, 0, len(recs))
	for _, r := range recs {
		docs = append(docs, store.Document{
			Kind:      kind,
			ID:        r.ID,
			Data:      []byte(r.Data),
			UpdatedAt: r.UpdatedAt,
		})
	}
	return docs, nil
}

// Delete implements store.DocumentStore.
func (s *RecordStore) Delete(ctx context.Context, kind store.Kind, id string) error {
	res := s.db.WithContext(ctx).
		Where("kind = ? AND id = ?", string(kind), id).
		Delete(&Record{})
	if res.Error != nil {
		return fmt.Errorf("Delete %s %s: %w", kind, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *RecordStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure RecordStore implements store.DocumentStore.
var _ store.DocumentStore = (*RecordStore)(nil)
