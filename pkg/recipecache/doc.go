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

// Package recipecache caches ranked recipe suggestions keyed by a hash of
// the inventory they were computed for.
//
// Entries carry their own TTL in minutes and are checked lazily: a stale
// entry reads as a miss and stays in the store until EvictExpired runs.
//
//	c := recipecache.New(nil)
//	hash := recipecache.InventoryHash([]string{"Milk", "eggs"})
//	_ = c.Put(ctx, hash, matches, 60)
//	e, ok := c.Get(ctx, hash)
package recipecache
