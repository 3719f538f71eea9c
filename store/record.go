package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Record persists a single document, falling back to a default value when
// nothing usable is stored.
type Record[T any] struct {
	store Store
	key   string
	def   T
	log   *zap.Logger
}

func NewRecord[T any](s Store, key string, def T, log *zap.Logger) *Record[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Record[T]{store: s, key: key, def: def, log: log}
}

func (r *Record[T]) Load(ctx context.Context) (T, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return r.def, nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", r.key, err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		r.log.Warn("discarding malformed payload", zap.String("key", r.key), zap.Error(err))
		return r.def, nil
	}
	return v, nil
}

func (r *Record[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	return nil
}
