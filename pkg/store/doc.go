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

// Package store persists the normalization and recipe suggestion caches in
// SQLite.
//
// Open applies the embedded schema migrations before returning, so a fresh
// path yields a ready database:
//
//	db, err := store.Open(ctx, "/var/lib/pantry/pantry.db")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	n := normalizer.New(vocab, normalizer.WithStore(store.NewMappingStore(db)))
//	c := recipecache.New(store.NewSuggestionStore(db))
//
// Timestamps are stored as Unix milliseconds. Suggestion batches are stored
// as a JSON array alongside a precomputed expiry used for eviction.
package store
