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
	"time"

	"github.com/fridgeware/pantry/pkg/matcher"
)

// Entry is one cached suggestion batch. There is at most one entry per
// inventory hash; writes replace it.
type Entry struct {
	InventoryHash string                `json:"inventoryHash" yaml:"inventoryHash"`
	Recipes       []matcher.RecipeMatch `json:"recipes" yaml:"recipes"`
	CreatedAt     time.Time             `json:"createdAt" yaml:"createdAt"`
	TTLMinutes    int                   `json:"ttlMinutes" yaml:"ttlMinutes"`
}

// ExpiresAt returns the instant after which the entry is stale.
func (e *Entry) ExpiresAt() time.Time {
	return e.CreatedAt.Add(time.Duration(e.TTLMinutes) * time.Minute)
}

// Stale reports whether now is past the entry's lifetime.
func (e *Entry) Stale(now time.Time) bool {
	return now.After(e.ExpiresAt())
}

// Store persists entries keyed by inventory hash. Get returns (nil, nil) on
// a miss. DeleteExpired removes entries stale at now and reports how many
// were removed.
type Store interface {
	Get(ctx context.Context, hash string) (*Entry, error)
	Put(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, hash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
