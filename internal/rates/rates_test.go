package rates

import (
	"context"
	"errors"
	"testing"
)

func TestStatic_USDToPKR(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		want    float64
		wantErr error
	}{
		{name: "configured", rate: 279.5, want: 279.5},
		{name: "unset", rate: 0, wantErr: ErrNoRate},
		{name: "negative", rate: -1, wantErr: ErrNoRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStatic(tt.rate).USDToPKR(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("rate = %v, want %v", got, tt.want)
			}
		})
	}
}
