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

package recipecache

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fridgeware/pantry/pkg/defaults"
	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/matcher"
)

const lockStripes = 64

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDefaultTTL sets the lifetime used by GetOrCompute and by Put calls
// that pass a non-positive TTL.
func WithDefaultTTL(minutes int) Option {
	return func(c *Cache) {
		if minutes > 0 {
			c.defaultTTL = minutes
		}
	}
}

// Cache holds ranked suggestion batches keyed by inventory hash. Stale
// entries read as misses without an eviction pass. Store failures never
// surface from Get; they are logged and counted as misses.
type Cache struct {
	store      Store
	logger     *slog.Logger
	now        func() time.Time
	defaultTTL int

	flight singleflight.Group
	locks  [lockStripes]sync.Mutex
}

// New returns a Cache over store. A nil store falls back to memory.
func New(store Store, opts ...Option) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Cache{
		store:      store,
		logger:     slog.Default(),
		now:        time.Now,
		defaultTTL: defaults.RecipeCacheTTLMinutes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the fresh entry cached under hash.
func (c *Cache) Get(ctx context.Context, hash string) (*Entry, bool) {
	e, err := c.store.Get(ctx, hash)
	if err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("recipe cache read failed", "inventoryHash", hash, "error", err)
		return nil, false
	}
	if e == nil {
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if e.Stale(c.now()) {
		cacheLookups.WithLabelValues("stale").Inc()
		c.logger.Debug("recipe cache entry stale", "inventoryHash", hash, "createdAt", e.CreatedAt, "ttlMinutes", e.TTLMinutes)
		return nil, false
	}
	cacheLookups.WithLabelValues("hit").Inc()
	return e, true
}

// Put stores recipes under hash, replacing any previous batch. A
// non-positive ttlMinutes uses the default TTL.
func (c *Cache) Put(ctx context.Context, hash string, recipes []matcher.RecipeMatch, ttlMinutes int) error {
	if hash == "" {
		return errors.New(errors.ErrCodeInvalidInput, "inventory hash is required")
	}
	if ttlMinutes <= 0 {
		ttlMinutes = c.defaultTTL
	}
	if recipes == nil {
		recipes = []matcher.RecipeMatch{}
	}

	mu := c.lock(hash)
	mu.Lock()
	defer mu.Unlock()

	err := c.store.Put(ctx, &Entry{
		InventoryHash: hash,
		Recipes:       recipes,
		CreatedAt:     c.now(),
		TTLMinutes:    ttlMinutes,
	})
	if err != nil {
		cacheWrites.WithLabelValues("error").Inc()
		return errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to store suggestions", err,
			map[string]any{"inventoryHash": hash})
	}
	cacheWrites.WithLabelValues("ok").Inc()
	c.logger.Debug("recipe suggestions cached", "inventoryHash", hash, "recipes", len(recipes), "ttlMinutes", ttlMinutes)
	return nil
}

// Invalidate removes the batch cached under hash.
func (c *Cache) Invalidate(ctx context.Context, hash string) error {
	mu := c.lock(hash)
	mu.Lock()
	defer mu.Unlock()

	if err := c.store.Delete(ctx, hash); err != nil {
		return errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to invalidate suggestions", err,
			map[string]any{"inventoryHash": hash})
	}
	return nil
}

// EvictExpired deletes every batch stale at now.
func (c *Cache) EvictExpired(ctx context.Context, now time.Time) (int, error) {
	n, err := c.store.DeleteExpired(ctx, now)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to evict stale suggestions", err)
	}
	cacheEvictions.Add(float64(n))
	if n > 0 {
		c.logger.Info("evicted stale recipe suggestions", "count", n)
	}
	return n, nil
}

// GetOrCompute returns the cached batch for hash, or runs compute, caches
// its result with the default TTL and returns it. Concurrent callers for the
// same hash share one compute. The boolean reports a cache hit. A failed
// cache write is logged and the computed result is still returned.
func (c *Cache) GetOrCompute(ctx context.Context, hash string, compute func(context.Context) ([]matcher.RecipeMatch, error)) ([]matcher.RecipeMatch, bool, error) {
	if e, ok := c.Get(ctx, hash); ok {
		return e.Recipes, true, nil
	}

	v, err, _ := c.flight.Do(hash, func() (any, error) {
		if e, ok := c.Get(ctx, hash); ok {
			return e.Recipes, nil
		}
		recipes, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Put(ctx, hash, recipes, c.defaultTTL); err != nil {
			c.logger.Warn("recipe cache write failed", "inventoryHash", hash, "error", err)
		}
		return recipes, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]matcher.RecipeMatch), false, nil
}

func (c *Cache) lock(hash string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(hash))
	return &c.locks[h.Sum32()%lockStripes]
}
