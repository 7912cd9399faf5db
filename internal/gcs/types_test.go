package gcs

import "testing"

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{uri: "gs://ledger-backups/backups/2025/03/10/x.json", wantBucket: "ledger-backups", wantObject: "backups/2025/03/10/x.json"},
		{uri: "gs://bucket/file.json", wantBucket: "bucket", wantObject: "file.json"},
		{uri: "s3://bucket/file.json", wantErr: true},
		{uri: "gs://bucket", wantErr: true},
		{uri: "gs://bucket/", wantErr: true},
		{uri: "gs:///file.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := ParseURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("ParseURI = %q %q, want %q %q", bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}

	if got := URI("b", "o/p.json"); got != "gs://b/o/p.json" {
		t.Errorf("URI = %q", got)
	}
}
