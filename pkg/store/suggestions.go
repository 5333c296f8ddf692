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
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/matcher"
	"github.com/fridgeware/pantry/pkg/recipecache"
)

// SuggestionStore persists recipe suggestion batches. It implements
// recipecache.Store.
type SuggestionStore struct {
	db *DB
}

// NewSuggestionStore returns a SuggestionStore backed by db.
func NewSuggestionStore(db *DB) *SuggestionStore {
	return &SuggestionStore{db: db}
}

// Get returns the batch stored under hash, stale or not, or nil when there is none.
func (s *SuggestionStore) Get(ctx context.Context, hash string) (*recipecache.Entry, error) {
	var (
		raw       string
		createdAt int64
		ttl       int
	)
	err := s.db.db.QueryRowContext(ctx, `
		SELECT recipes, created_at, ttl_minutes
		FROM recipe_suggestions
		WHERE inventory_hash = ?
	`, hash).Scan(&raw, &createdAt, &ttl)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to read suggestions", err,
			map[string]any{"inventoryHash": hash})
	}

	var recipes []matcher.RecipeMatch
	if err := json.Unmarshal([]byte(raw), &recipes); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to decode suggestions", err,
			map[string]any{"inventoryHash": hash})
	}
	return &recipecache.Entry{
		InventoryHash: hash,
		Recipes:       recipes,
		CreatedAt:     time.UnixMilli(createdAt).UTC(),
		TTLMinutes:    ttl,
	}, nil
}

// Put inserts or replaces the batch for e.InventoryHash.
func (s *SuggestionStore) Put(ctx context.Context, e *recipecache.Entry) error {
	if e == nil {
		return nil
	}
	recipes := e.Recipes
	if recipes == nil {
		recipes = []matcher.RecipeMatch{}
	}
	raw, err := json.Marshal(recipes)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode suggestions", err)
	}

	_, err = s.db.db.ExecContext(ctx, `
		INSERT INTO recipe_suggestions (inventory_hash, recipes, created_at, ttl_minutes, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(inventory_hash) DO UPDATE SET
			recipes = excluded.recipes,
			created_at = excluded.created_at,
			ttl_minutes = excluded.ttl_minutes,
			expires_at = excluded.expires_at
	`, e.InventoryHash, string(raw), e.CreatedAt.UnixMilli(), e.TTLMinutes, e.ExpiresAt().UnixMilli())
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to write suggestions", err,
			map[string]any{"inventoryHash": e.InventoryHash})
	}
	return nil
}

// Delete removes the batch for hash.
func (s *SuggestionStore) Delete(ctx context.Context, hash string) error {
	if _, err := s.db.db.ExecContext(ctx, `DELETE FROM recipe_suggestions WHERE inventory_hash = ?`, hash); err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to delete suggestions", err,
			map[string]any{"inventoryHash": hash})
	}
	return nil
}

// DeleteExpired removes every batch whose lifetime ended before now.
func (s *SuggestionStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.db.ExecContext(ctx, `DELETE FROM recipe_suggestions WHERE expires_at < ?`, now.UnixMilli())
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to evict suggestions", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to count evicted suggestions", err)
	}
	return int(n), nil
}
