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

package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVocabulary(t *testing.T) {
	v := NewVocabulary([]Ingredient{
		{Name: "Milk", Synonyms: []string{"Milch", " "}, Category: "dairy"},
		{Name: ""},
		{Name: "milk", Category: "duplicate"},
		{Name: "oat milk", Synonyms: []string{"milch"}},
	})

	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"Milk", "oat milk"}, v.Names())

	ing, m, ok := v.Resolve("MILK")
	assert.True(t, ok)
	assert.Equal(t, MethodExact, m)
	assert.Equal(t, "dairy", ing.Category)

	ing, m, ok = v.Resolve("milch")
	assert.True(t, ok)
	assert.Equal(t, MethodSynonym, m)
	assert.Equal(t, "Milk", ing.Name, "shared synonym resolves to the earliest entry")

	_, m, ok = v.Resolve("butter")
	assert.False(t, ok)
	assert.Equal(t, MethodNone, m)
}

func TestVocabulary_IngredientsIsCopy(t *testing.T) {
	v := NewVocabulary([]Ingredient{{Name: "egg", Synonyms: []string{"ei"}}})
	items := v.Ingredients()
	items[0].Synonyms[0] = "mutated"

	_, _, ok := v.Resolve("ei")
	assert.True(t, ok)
	assert.Equal(t, "ei", v.Ingredients()[0].Synonyms[0])
}

func TestVocabulary_Nil(t *testing.T) {
	var v *Vocabulary
	assert.Zero(t, v.Len())
	assert.Nil(t, v.Names())
	_, _, ok := v.Resolve("milk")
	assert.False(t, ok)
}

func TestCleanMarketingTerms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GO BIO TOMATEN", "TOMATEN"},
		{"BIO-GURKEN GO BIO", "GURKEN"},
		{"BIO CLEMENTINEN", "CLEMENTINEN"},
		{"Bio EHL Champignon", "EHL Champignon"},
		{"Organic Bananas", "Bananas"},
		{"Fair Trade Kaffee", "Kaffee"},
		{"Eco Eggs", "Eggs"},
		{"Milch bio", "Milch"},
		{"Tofu Bio Natur", "Tofu Natur"},
		{"Biotin Kapseln", "Biotin Kapseln"},
		{"Economy Pack", "Economy Pack"},
		{"BIO", "BIO"},
		{"  Brot  ", "Brot"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanMarketingTerms(tt.in))
		})
	}
}
