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
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"

	"github.com/fridgeware/pantry/pkg/similarity"
)

// InventoryHash returns the cache key for an inventory: the hex SHA-256 of
// the sorted, deduplicated, normalized names joined by newlines. Names that
// normalize to nothing are ignored, so order, case and duplicates do not
// change the key.
func InventoryHash(names []string) string {
	set := make([]string, 0, len(names))
	for _, n := range names {
		if v := similarity.Normalize(n); v != "" {
			set = append(set, v)
		}
	}
	slices.Sort(set)
	set = slices.Compact(set)

	sum := sha256.Sum256([]byte(strings.Join(set, "\n")))
	return hex.EncodeToString(sum[:])
}
