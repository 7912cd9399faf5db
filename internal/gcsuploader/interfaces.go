package gcsuploader

import "github.com/dvloznov/partner-ledger/internal/gcs"

// Ensure Client implements gcs.ObjectStore.
var _ gcs.ObjectStore = (*Client)(nil)
