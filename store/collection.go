package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Entity is anything kept in a Collection.
type Entity interface {
	EntityID() string
}

// SeedMode decides how a collection's seed entities combine with what
// was stored.
type SeedMode int

const (
	// MergeSeeds appends the seeds after the stored entities on every load
	// and filters them out of every write, so they reset on reload.
	MergeSeeds SeedMode = iota
	// DefaultSeeds uses the seeds only while nothing has been stored.
	// Once saved, the whole list is written, seeds included.
	DefaultSeeds
)

// Collection persists one entity list under a single key.
type Collection[T Entity] struct {
	store Store
	key   string
	mode  SeedMode
	seeds []T
	log   *zap.Logger

	// Hydrate, when set, is applied to every stored entity on load.
	Hydrate func(T) T
}

func NewCollection[T Entity](s Store, key string, mode SeedMode, seeds []T, log *zap.Logger) *Collection[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collection[T]{store: s, key: key, mode: mode, seeds: seeds, log: log}
}

func (c *Collection[T]) Key() string { return c.key }

// IsSeed reports whether id belongs to a seed entity.
func (c *Collection[T]) IsSeed(id string) bool {
	for _, s := range c.seeds {
		if s.EntityID() == id {
			return true
		}
	}
	return false
}

// Load reads the stored list and combines it with the seeds. Absent and
// malformed payloads both count as an empty list; only backend failures
// are returned.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	stored, found, err := c.read(ctx)
	if err != nil {
		return nil, err
	}

	if c.mode == DefaultSeeds {
		if !found {
			return clone(c.seeds), nil
		}
		return stored, nil
	}

	out := make([]T, 0, len(stored)+len(c.seeds))
	out = append(out, stored...)
	out = append(out, c.seeds...)
	return out, nil
}

func (c *Collection[T]) read(ctx context.Context) ([]T, bool, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn("discarding malformed payload", zap.String("key", c.key), zap.Error(err))
		return nil, false, nil
	}
	if c.Hydrate != nil {
		for i := range items {
			items[i] = c.Hydrate(items[i])
		}
	}
	return items, true, nil
}

// Save writes items, minus seed entities when the collection merges seeds.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	toWrite := items
	if c.mode == MergeSeeds {
		toWrite = make([]T, 0, len(items))
		for _, it := range items {
			if !c.IsSeed(it.EntityID()) {
				toWrite = append(toWrite, it)
			}
		}
	}
	if toWrite == nil {
		toWrite = []T{}
	}

	raw, err := json.Marshal(toWrite)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
