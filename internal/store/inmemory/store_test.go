package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/dvloznov/partner-ledger/internal/store"
)

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.Put(ctx, store.KindExpense, "e1", []byte(`{"id":"e1"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, store.KindExpense, "e1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"id":"e1"}` {
		t.Errorf("Get = %s", got)
	}

	if _, err := s.Get(ctx, store.KindTransaction, "e1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other kind, got %v", err)
	}

	if err := s.Delete(ctx, store.KindExpense, "e1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, store.KindExpense, "e1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_PutCopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	data := []byte(`{"a":1}`)
	if err := s.Put(ctx, store.KindSetting, "x", data); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	data[2] = 'b'

	got, _ := s.Get(ctx, store.KindSetting, "x")
	if string(got) != `{"a":1}` {
		t.Errorf("stored data changed with caller slice: %s", got)
	}
}

func TestStore_ListSorted(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for _, id := range []string{"c", "a", "b"} {
		if err := s.Put(ctx, store.KindPartner, id, []byte(`{}`)); err != nil {
			t.Fatalf("Put %s failed: %v", id, err)
		}
	}

	docs, err := s.List(ctx, store.KindPartner)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 3 || docs[0].ID != "a" || docs[1].ID != "b" || docs[2].ID != "c" {
		t.Errorf("List order = %+v", docs)
	}

	empty, err := s.List(ctx, store.KindExpense)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty list, got %v %v", empty, err)
	}
}

func TestStore_RequiresID(t *testing.T) {
	if err := NewStore().Put(context.Background(), store.KindExpense, "", nil); err == nil {
		t.Error("expected error for empty id")
	}
}
