package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Collection is one entity type's flat-file persistence: the whole collection
// is a single JSON array on disk, read and written in full. There is no
// partial update and no indexing.
//
// The mutex serializes read-modify-write cycles per entity type, closing the
// lost-update window concurrent requests would otherwise have between Load
// and Replace. Cross-collection and cross-process writers still race
// (last write wins).
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// Load returns the complete current collection. A missing file is lazily
// initialized to an empty collection; a malformed file is an error the
// caller should treat as fatal.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

// Replace overwrites the whole file with the serialized collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(ctx, items)
}

// Mutate runs fn on the loaded collection and persists its result, holding
// the collection lock for the whole cycle. fn returning an error aborts the
// write and the error is passed through unwrapped, so sentinel matching with
// errors.Is keeps working.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	next, err := fn(items)
	if err != nil {
		return nil, err
	}

	if err := c.saveLocked(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (c *Collection[T]) loadLocked(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		if err := c.saveLocked(ctx, []T{}); err != nil {
			return nil, err
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonstore: read %s: %w", c.path, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("jsonstore: parse %s: %w", c.path, err)
	}
	return items, nil
}

func (c *Collection[T]) saveLocked(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: marshal %s: %w", c.path, err)
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return fmt.Errorf("jsonstore: write %s: %w", c.path, err)
	}
	return nil
}
