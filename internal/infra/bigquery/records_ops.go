package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/dvloznov/partner-ledger/internal/store"
)

const recordsTable = "records"

// RecordStore is the BigQuery implementation of store.DocumentStore. It
// holds a shared client to avoid creating a new connection per operation.
//
// Streaming inserts cannot be updated by DML for a while after they land,
// so writes never update in place: Put and Delete append a new version.
type RecordStore struct {
	client    *bigquery.Client
	projectID string
	datasetID string
}

// NewRecordStore creates a RecordStore for the given project and dataset.
func NewRecordStore(ctx context.Context, projectID, datasetID string) (*RecordStore, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewRecordStore: creating client: %w", err)
	}
	return NewRecordStoreWithClient(client, projectID, datasetID), nil
}

// NewRecordStoreWithClient wraps an existing client.
func NewRecordStoreWithClient(client *bigquery.Client, projectID, datasetID string) *RecordStore {
	return &RecordStore{
		client:    client,
		projectID: projectID,
		datasetID: datasetID,
	}
}

// Close closes the BigQuery client connection.
func (s *RecordStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *RecordStore) tableRef() string {
	return "`" + s.projectID + "." + s.datasetID + "." + recordsTable + "`"
}

// Put implements store.DocumentStore.
func (s *RecordStore) Put(ctx context.Context, kind store.Kind, id string, data []byte) error {
	return s.insert(ctx, &RecordRow{
		Kind:      string(kind),
		ID:        id,
		Data:      string(data),
		UpdatedTS: time.Now().UTC(),
	})
}

// Get implements store.DocumentStore.
func (s *RecordStore) Get(ctx context.Context, kind store.Kind, id string) ([]byte, error) {
	rows, err := s.query(ctx, latestRecordsQuery(s.tableRef(), true), kind, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return []byte(rows[0].Data), nil
}

// List implements store.DocumentStore.
func (s *RecordStore) List(ctx context.Context, kind store.Kind) ([]store.Document, error) {
	rows, err := s.query(ctx, latestRecordsQuery(s.tableRef(), false), kind, "")
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	docs := make([]store.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, store.Document{
			Kind:      kind,
			ID:        r.ID,
			Data:      []byte(r.Data),
			UpdatedAt: r.UpdatedTS,
		})
	}
	return docs, nil
}

// Delete implements store.DocumentStore by appending a tombstone.
func (s *RecordStore) Delete(ctx context.Context, kind store.Kind, id string) error {
	if _, err := s.Get(ctx, kind, id); err != nil {
		return err
	}
	return s.insert(ctx, &RecordRow{
		Kind:      string(kind),
		ID:        id,
		Deleted:   true,
		UpdatedTS: time.Now().UTC(),
	})
}

func (s *RecordStore) insert(ctx context.Context, row *RecordRow) error {
	log := logger.FromContext(ctx)

	inserter := s.client.DatasetInProject(s.projectID, s.datasetID).Table(recordsTable).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("insert %s %s: %w", row.Kind, row.ID, err)
	}

	log.Debug().
		Str("kind", row.Kind).
		Str("id", row.ID).
		Bool("deleted", row.Deleted).
		Msg("Record version appended")
	return nil
}

func (s *RecordStore) query(ctx context.Context, sql string, kind store.Kind, id string) ([]RecordRow, error) {
	q := s.client.Query(sql)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "kind", Value: string(kind)},
	}
	if id != "" {
		q.Parameters = append(q.Parameters, bigquery.QueryParameter{Name: "id", Value: id})
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("query read: %w", err)
	}

	var rows []RecordRow
	for {
		var r RecordRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iter next: %w", err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// latestRecordsQuery selects the newest live version of each record of a
// kind, optionally restricted to one id.
func latestRecordsQuery(table string, byID bool) string {
	filter := "kind = @kind"
	if byID {
		filter += " AND id = @id"
	}
	return `
		SELECT kind, id, data, deleted, updated_ts
		FROM (
			SELECT *
			FROM ` + table + `
			WHERE ` + filter + `
			QUALIFY ROW_NUMBER() OVER (PARTITION BY kind, id ORDER BY updated_ts DESC) = 1
		)
		WHERE deleted = FALSE
		ORDER BY id
	`
}

// Ensure RecordStore implements store.DocumentStore.
var _ store.DocumentStore = (*RecordStore)(nil)
