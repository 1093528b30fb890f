package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/melodydiary/internal/dbx"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/repositories/blobs"
)

// Store reads and writes JSON values through a blobs.Repository.
type Store struct {
	repo   blobs.Repository
	db     dbx.Beginner
	logger logging.Logger
}

// NewStore wraps repo. db is used by ClearAll to wipe every key atomically;
// it may be nil, in which case ClearAll runs without a transaction.
func NewStore(repo blobs.Repository, db dbx.Beginner, logger logging.Logger) *Store {
	return &Store{repo: repo, db: db, logger: logger.With("component", "storage")}
}

// Load decodes the value stored under key into a T. It returns fallback,
// and logs the reason, if the value is absent, "undefined" or unreadable.
func Load[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "failed to read stored value, using default", "key", key, "error", err)
		return fallback
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == undefinedValue {
		s.logger.Debug(ctx, "no stored value, using default", "key", key)
		return fallback
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn(ctx, "stored value is corrupt, using default", "key", key, "error", err)
		return fallback
	}
	return v
}

// Save encodes value and overwrites whatever was stored under key.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.repo.Set(ctx, key, data); err != nil {
		s.logger.Error(ctx, "failed to persist value", "key", key, "error", err)
		return err
	}
	return nil
}

// Clear removes key. Clearing a missing key is not an error.
func (s *Store) Clear(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// ClearAll removes every stored key.
func (s *Store) ClearAll(ctx context.Context) error {
	if s.db == nil {
		return s.repo.Clear(ctx)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return blobs.NewSQLiteRepository(tx).Clear(ctx)
	})
}

// Keys lists the keys currently stored.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	m, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys, nil
}
