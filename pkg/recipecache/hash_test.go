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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryHash(t *testing.T) {
	base := InventoryHash([]string{"Milk", "eggs"})

	tests := []struct {
		name  string
		names []string
		same  bool
	}{
		{name: "reordered and recased", names: []string{"EGGS", "milk"}, same: true},
		{name: "duplicates", names: []string{"milk", "eggs", "Milk"}, same: true},
		{name: "surrounding whitespace", names: []string{"  milk ", "eggs"}, same: true},
		{name: "blank entries", names: []string{"milk", "", "eggs", "   "}, same: true},
		{name: "diacritics", names: []string{"mílk", "eggs"}, same: true},
		{name: "different item", names: []string{"milk", "egg"}, same: false},
		{name: "subset", names: []string{"milk"}, same: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InventoryHash(tt.names)
			if tt.same {
				assert.Equal(t, base, got)
			} else {
				assert.NotEqual(t, base, got)
			}
		})
	}
}

func TestInventoryHashFormat(t *testing.T) {
	h := InventoryHash(nil)
	assert.Len(t, h, 64)
	assert.Equal(t, h, InventoryHash([]string{" "}))
	assert.Regexp(t, `^[0-9a-f]{64}$`, InventoryHash([]string{"rice"}))
}
