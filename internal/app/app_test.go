package app

import (
	"context"
	"testing"

	"github.com/dvloznov/partner-ledger/internal/config"
	"github.com/dvloznov/partner-ledger/internal/store/inmemory"
)

func TestOpenStore_Memory(t *testing.T) {
	s, err := OpenStore(context.Background(), &config.Config{StoreBackend: config.BackendMemory})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*inmemory.Store); !ok {
		t.Errorf("got %T, want *inmemory.Store", s)
	}
}

func TestOpenStore_Unknown(t *testing.T) {
	if _, err := OpenStore(context.Background(), &config.Config{StoreBackend: "sqlite"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNewLedger(t *testing.T) {
	svc := NewLedger(inmemory.NewStore(), &config.Config{USDToPKRRate: 280})
	partners, err := svc.ListPartners(context.Background())
	if err != nil {
		t.Fatalf("ListPartners: %v", err)
	}
	if len(partners) != 0 {
		t.Errorf("partners = %d, want 0", len(partners))
	}
}
