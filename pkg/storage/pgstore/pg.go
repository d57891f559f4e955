// Package pgstore keeps session key/value pairs in PostgreSQL.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type pgStore struct {
	db  bun.IDB
	now func() time.Time
}

// NewStore creates a new postgres implementation of the session storage
func NewStore(db bun.IDB) *pgStore {
	return &pgStore{db: db, now: time.Now}
}

func (s *pgStore) Get(ctx context.Context, key string) (string, bool, error) {
	dao := new(EntryDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key: %w", err)
	}
	return dao.Value, true, nil
}

func (s *pgStore) Set(ctx context.Context, key, value string) error {
	dao := &EntryDao{Key: key, Value: value, UpdatedAt: s.now().UTC()}
	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}

func (s *pgStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*EntryDao)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove key: %w", err)
	}
	return nil
}
