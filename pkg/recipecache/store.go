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
	"slices"
	"sync"
	"time"

	"github.com/fridgeware/pantry/pkg/matcher"
)

// MemoryStore is an in-process Store backed by a map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get returns a copy of the entry stored under hash.
func (s *MemoryStore) Get(_ context.Context, hash string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[hash]
	if !ok {
		return nil, nil
	}
	return cloneEntry(&e), nil
}

// Put stores a copy of e, replacing any entry with the same hash.
func (s *MemoryStore) Put(_ context.Context, e *Entry) error {
	if e == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[e.InventoryHash] = *cloneEntry(e)
	return nil
}

// Delete removes hash.
func (s *MemoryStore) Delete(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, hash)
	return nil
}

// DeleteExpired removes every entry stale at now.
func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k, e := range s.entries {
		if e.Stale(now) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored entries, stale ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func cloneEntry(e *Entry) *Entry {
	c := *e
	c.Recipes = make([]matcher.RecipeMatch, len(e.Recipes))
	for i, rm := range e.Recipes {
		rm.MatchedIngredients = slices.Clone(rm.MatchedIngredients)
		rm.MissingIngredients = slices.Clone(rm.MissingIngredients)
		c.Recipes[i] = rm
	}
	return &c
}
