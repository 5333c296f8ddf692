// Copyright (c) 2026, The Fridgeware Pantry Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/normalizer"
)

// MappingStore persists normalization cache entries. It implements
// normalizer.Store.
type MappingStore struct {
	db *DB
}

// NewMappingStore returns a MappingStore backed by db.
func NewMappingStore(db *DB) *MappingStore {
	return &MappingStore{db: db}
}

// Get returns the entry stored under key, or nil when there is none.
func (s *MappingStore) Get(ctx context.Context, key string) (*normalizer.Entry, error) {
	var (
		e         normalizer.Entry
		name      sql.NullString
		method    string
		verified  bool
		updatedAt int64
	)
	err := s.db.db.QueryRowContext(ctx, `
		SELECT scanned_name, normalized_name, category, confidence, method, verified_by_user, updated_at
		FROM ingredient_mappings
		WHERE cache_key = ?
	`, key).Scan(&e.Result.ScannedName, &name, &e.Result.Category, &e.Result.Confidence, &method, &verified, &updatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to read mapping", err,
			map[string]any{"key": key})
	}

	if name.Valid {
		e.Result.NormalizedName = &name.String
	}
	e.Result.Method = normalizer.Method(method)
	e.VerifiedByUser = verified
	e.Timestamp = time.UnixMilli(updatedAt).UTC()
	return &e, nil
}

// Put inserts or replaces the entry under key.
func (s *MappingStore) Put(ctx context.Context, key string, e *normalizer.Entry) error {
	if e == nil {
		return nil
	}
	var name sql.NullString
	if e.Result.NormalizedName != nil {
		name = sql.NullString{String: *e.Result.NormalizedName, Valid: true}
	}

	_, err := s.db.db.ExecContext(ctx, `
		INSERT INTO ingredient_mappings (
			cache_key, scanned_name, normalized_name, category, confidence, method, verified_by_user, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			scanned_name = excluded.scanned_name,
			normalized_name = excluded.normalized_name,
			category = excluded.category,
			confidence = excluded.confidence,
			method = excluded.method,
			verified_by_user = excluded.verified_by_user,
			updated_at = excluded.updated_at
	`, key, e.Result.ScannedName, name, e.Result.Category, e.Result.Confidence,
		e.Result.Method.String(), e.VerifiedByUser, e.Timestamp.UnixMilli())
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to write mapping", err,
			map[string]any{"key": key})
	}
	return nil
}

// Delete removes key.
func (s *MappingStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.db.ExecContext(ctx, `DELETE FROM ingredient_mappings WHERE cache_key = ?`, key); err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to delete mapping", err,
			map[string]any{"key": key})
	}
	return nil
}

// Clear removes every mapping, verified ones included.
func (s *MappingStore) Clear(ctx context.Context) error {
	if _, err := s.db.db.ExecContext(ctx, `DELETE FROM ingredient_mappings`); err != nil {
		return errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to clear mappings", err)
	}
	return nil
}

// DeleteExpired removes automatic mappings last written before cutoff.
// Verified mappings are kept.
func (s *MappingStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.db.ExecContext(ctx, `
		DELETE FROM ingredient_mappings
		WHERE verified_by_user = 0 AND updated_at <= ?
	`, cutoff.UnixMilli())
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to prune mappings", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to count pruned mappings", err)
	}
	return int(n), nil
}
