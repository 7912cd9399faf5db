package bigquery

import "time"

// RecordRow maps to <dataset>.records. Rows are append-only: every write adds
// a version and the latest version per (kind, id) wins. Deleted marks a
// tombstone.
type RecordRow struct {
	Kind      string    `bigquery:"kind"`
	ID        string    `bigquery:"id"`
	Data      string    `bigquery:"data"`
	Deleted   bool      `bigquery:"deleted"`
	UpdatedTS time.Time `bigquery:"updated_ts"`
}
