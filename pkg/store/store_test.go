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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/matcher"
	"github.com/fridgeware/pantry/pkg/normalizer"
	"github.com/fridgeware/pantry/pkg/recipecache"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "pantry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("empty path", func(t *testing.T) {
		_, err := Open(ctx, " ")
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
	})

	t.Run("reopen keeps data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pantry.db")
		db, err := Open(ctx, path)
		require.NoError(t, err)
		require.NoError(t, NewMappingStore(db).Put(ctx, "milch", &normalizer.Entry{
			Result:    normalizer.Result{ScannedName: "MILCH", NormalizedName: strPtr("milk"), Method: normalizer.MethodSynonym, Confidence: 0.95},
			Timestamp: time.Now(),
		}))
		require.NoError(t, db.Close())

		db, err = Open(ctx, path)
		require.NoError(t, err)
		defer db.Close()
		e, err := NewMappingStore(db).Get(ctx, "milch")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "milk", e.Result.Name())
		assert.Equal(t, path, db.Path())
	})

	t.Run("memory", func(t *testing.T) {
		db, err := Open(ctx, MemoryPath)
		require.NoError(t, err)
		defer db.Close()
		assert.NoError(t, db.Ping(ctx))
	})
}

func TestMappingStore(t *testing.T) {
	ctx := context.Background()
	s := NewMappingStore(openTestDB(t))
	ts := time.Date(2025, 3, 12, 18, 30, 0, 0, time.UTC)

	got, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	entry := &normalizer.Entry{
		Result: normalizer.Result{
			ScannedName:    "Bio EHL Champignon",
			NormalizedName: strPtr("mushroom"),
			Category:       "vegetables",
			Confidence:     0.8,
			Method:         normalizer.MethodPartial,
		},
		Timestamp: ts,
	}
	require.NoError(t, s.Put(ctx, "bio ehl champignon", entry))

	got, err = s.Get(ctx, "bio ehl champignon")
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	unmatched := &normalizer.Entry{
		Result:    normalizer.Result{ScannedName: "XYZ 123", Method: normalizer.MethodNone},
		Timestamp: ts,
	}
	require.NoError(t, s.Put(ctx, "xyz 123", unmatched))
	got, err = s.Get(ctx, "xyz 123")
	require.NoError(t, err)
	assert.Nil(t, got.Result.NormalizedName)

	verified := *entry
	verified.Result.NormalizedName = strPtr("champignon")
	verified.Result.Method = normalizer.MethodExact
	verified.Result.Confidence = 1
	verified.VerifiedByUser = true
	require.NoError(t, s.Put(ctx, "bio ehl champignon", &verified))
	got, err = s.Get(ctx, "bio ehl champignon")
	require.NoError(t, err)
	assert.True(t, got.VerifiedByUser)
	assert.Equal(t, "champignon", got.Result.Name())

	n, err := s.DeleteExpired(ctx, ts.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the automatic mapping is pruned")

	require.NoError(t, s.Delete(ctx, "bio ehl champignon"))
	got, err = s.Get(ctx, "bio ehl champignon")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Put(ctx, "a", entry))
	require.NoError(t, s.Clear(ctx))
	got, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMappingStoreWithNormalizer(t *testing.T) {
	ctx := context.Background()
	vocab := normalizer.NewVocabulary([]normalizer.Ingredient{
		{Name: "milk", Synonyms: []string{"milch"}},
	})
	n := normalizer.New(vocab, normalizer.WithStore(NewMappingStore(openTestDB(t))))

	first, err := n.Normalize(ctx, "Milch", false)
	require.NoError(t, err)
	cached, ok := n.Lookup(ctx, "Milch")
	require.True(t, ok)
	assert.Equal(t, first, cached)
}

func TestSuggestionStore(t *testing.T) {
	ctx := context.Background()
	s := NewSuggestionStore(openTestDB(t))
	created := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)

	got, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	entry := &recipecache.Entry{
		InventoryHash: "abc",
		Recipes: []matcher.RecipeMatch{{
			RecipeID:           "omelette",
			RecipeName:         "Omelette",
			MatchPercentage:    67,
			MatchedIngredients: []string{"eggs", "milk"},
			MissingIngredients: []string{"chives"},
			MissingCount:       1,
		}},
		CreatedAt:  created,
		TTLMinutes: 60,
	}
	require.NoError(t, s.Put(ctx, entry))

	got, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	replacement := &recipecache.Entry{InventoryHash: "abc", CreatedAt: created, TTLMinutes: 5}
	require.NoError(t, s.Put(ctx, replacement))
	got, err = s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got.Recipes)
	assert.Equal(t, 5, got.TTLMinutes)

	require.NoError(t, s.Put(ctx, &recipecache.Entry{InventoryHash: "def", CreatedAt: created, TTLMinutes: 120}))

	n, err := s.DeleteExpired(ctx, created.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "not stale at exactly the TTL")

	n, err = s.DeleteExpired(ctx, created.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Delete(ctx, "def"))
	got, err = s.Get(ctx, "def")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSuggestionStoreWithCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	c := recipecache.New(NewSuggestionStore(openTestDB(t)), recipecache.WithClock(func() time.Time { return now }))

	hash := recipecache.InventoryHash([]string{"eggs", "milk"})
	require.NoError(t, c.Put(ctx, hash, []matcher.RecipeMatch{{RecipeID: "omelette", MatchedIngredients: []string{}, MissingIngredients: []string{}}}, 60))

	e, ok := c.Get(ctx, hash)
	require.True(t, ok)
	assert.Equal(t, "omelette", e.Recipes[0].RecipeID)

	now = now.Add(61 * time.Minute)
	_, ok = c.Get(ctx, hash)
	assert.False(t, ok)

	n, err := c.EvictExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
