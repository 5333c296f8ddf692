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

// Package suggestion ranks the recipe catalog against a user's inventory
// and caches the ranking per inventory hash.
//
// Inventories may be sent as canonical ingredient names or, with
// Normalize set, as scanned product names that are first mapped through the
// normalizer. The cache key is computed after normalization so "Milch" and
// "milk" share an entry.
//
// HTTP surface:
//
//	POST   /v1/recipes/suggestions          rank an inventory
//	DELETE /v1/recipes/suggestions/{hash}   drop a cached ranking
package suggestion
