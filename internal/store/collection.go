package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection is typed access to one kind of document.
type Collection[T any] struct {
	store DocumentStore
	kind  Kind
	idOf  func(T) string
}

// NewCollection creates a collection of kind whose ids are read with idOf.
func NewCollection[T any](s DocumentStore, kind Kind, idOf func(T) string) *Collection[T] {
	return &Collection[T]{store: s, kind: kind, idOf: idOf}
}

// Kind returns the collection kind.
func (c *Collection[T]) Kind() Kind {
	return c.kind
}

// Put stores v under its id.
func (c *Collection[T]) Put(ctx context.Context, v T) error {
	id := c.idOf(v)
	if id == "" {
		return fmt.Errorf("Put %s: id is required", c.kind)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("Put %s %s: marshal: %w", c.kind, id, err)
	}
	if err := c.store.Put(ctx, c.kind, id, data); err != nil {
		return fmt.Errorf("Put %s %s: %w", c.kind, id, err)
	}
	return nil
}

// Get loads the record id. Missing records wrap ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	data, err := c.store.Get(ctx, c.kind, id)
	if err != nil {
		return v, fmt.Errorf("Get %s %s: %w", c.kind, id, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("Get %s %s: unmarshal: %w", c.kind, id, err)
	}
	return v, nil
}

// List loads every record ordered by id.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.kind)
	if err != nil {
		return nil, fmt.Errorf("List %s: %w", c.kind, err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := json.Unmarshal(d.Data, &v); err != nil {
			return nil, fmt.Errorf("List %s: unmarshal %s: %w", c.kind, d.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Delete removes the record id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, c.kind, id); err != nil {
		return fmt.Errorf("Delete %s %s: %w", c.kind, id, err)
	}
	return nil
}
