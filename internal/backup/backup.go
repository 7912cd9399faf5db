// Package backup exports every ledger record into one JSON snapshot and
// restores snapshots into a document store.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/dvloznov/partner-ledger/internal/gcs"
	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/dvloznov/partner-ledger/internal/store"
)

// FormatVersion is bumped when the snapshot layout changes.
const FormatVersion = 1

const objectPrefix = "backups"

// Snapshot is a full copy of the ledger.
type Snapshot struct {
	Version   int              `json:"version"`
	CreatedAt time.Time        `json:"createdAt"`
	Documents []store.Document `json:"documents"`
}

// Counts returns the number of documents per kind.
func (s Snapshot) Counts() map[store.Kind]int {
	counts := make(map[store.Kind]int, len(store.Kinds))
	for _, d := range s.Documents {
		counts[d.Kind]++
	}
	return counts
}

// Export reads every kind from s.
func Export(ctx context.Context, s store.DocumentStore, now time.Time) (Snapshot, error) {
	snap := Snapshot{Version: FormatVersion, CreatedAt: now.UTC()}
	for _, kind := range store.Kinds {
		docs, err := s.List(ctx, kind)
		if err != nil {
			return Snapshot{}, fmt.Errorf("Export: list %s: %w", kind, err)
		}
		snap.Documents = append(snap.Documents, docs...)
	}
	return snap, nil
}

// Restore writes every document of snap into s. Existing documents with
// the same kind and id are replaced; others are left alone.
func Restore(ctx context.Context, s store.DocumentStore, snap Snapshot) (int, error) {
	if snap.Version != FormatVersion {
		return 0, fmt.Errorf("Restore: unsupported snapshot version %d", snap.Version)
	}
	for i, d := range snap.Documents {
		if d.Kind == "" || d.ID == "" {
			return i, fmt.Errorf("Restore: document %d has no kind or id", i)
		}
		if err := s.Put(ctx, d.Kind, d.ID, d.Data); err != nil {
			return i, fmt.Errorf("Restore: put %s/%s: %w", d.Kind, d.ID, err)
		}
	}
	return len(snap.Documents), nil
}

// Encode writes snap as indented JSON.
func Encode(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// ObjectName is the bucket path of a snapshot taken at t.
func ObjectName(t time.Time) string {
	t = t.UTC()
	return path.Join(objectPrefix, t.Format("2006/01/02"), t.Format("20060102T150405Z")+".json")
}

// Service moves snapshots between a document store and object storage.
type Service struct {
	store   store.DocumentStore
	objects gcs.ObjectStore
	bucket  string
	now     func() time.Time
}

// NewService creates a backup service writing to bucket.
func NewService(s store.DocumentStore, objects gcs.ObjectStore, bucket string) *Service {
	return &Service{store: s, objects: objects, bucket: bucket, now: time.Now}
}

// Backup uploads a snapshot and returns its gs:// URI.
func (svc *Service) Backup(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	snap, err := Export(ctx, svc.store, svc.now())
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("Backup: marshal: %w", err)
	}

	object := ObjectName(snap.CreatedAt)
	if err := svc.objects.Upload(ctx, svc.bucket, object, data, "application/json"); err != nil {
		return "", fmt.Errorf("Backup: upload: %w", err)
	}

	uri := gcs.URI(svc.bucket, object)
	log.Info().
		Str("uri", uri).
		Int("documents", len(snap.Documents)).
		Msg("Backup uploaded")
	return uri, nil
}

// RestoreFrom downloads the snapshot at uri and restores it.
func (svc *Service) RestoreFrom(ctx context.Context, uri string) (int, error) {
	log := logger.FromContext(ctx)

	data, err := svc.objects.Download(ctx, uri)
	if err != nil {
		return 0, fmt.Errorf("RestoreFrom: download: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, fmt.Errorf("RestoreFrom: decode %s: %w", uri, err)
	}

	n, err := Restore(ctx, svc.store, snap)
	if err != nil {
		return n, err
	}
	log.Info().Str("uri", uri).Int("documents", n).Msg("Backup restored")
	return n, nil
}
