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

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		inventory   []string
		percentage  int
		matched     []string
		missing     []string
	}{
		{
			name:        "empty recipe",
			ingredients: nil,
			inventory:   []string{"rice"},
			percentage:  0,
			matched:     []string{},
			missing:     []string{},
		},
		{
			name:        "empty inventory",
			ingredients: []string{"rice", "eggs"},
			inventory:   nil,
			percentage:  0,
			matched:     []string{},
			missing:     []string{"rice", "eggs"},
		},
		{
			name:        "ingredient contains inventory item",
			ingredients: []string{"2 cups raw white rice", "eggs", "milk"},
			inventory:   []string{"rice", "milk"},
			percentage:  67,
			matched:     []string{"2 cups raw white rice", "milk"},
			missing:     []string{"eggs"},
		},
		{
			name:        "inventory item contains ingredient",
			ingredients: []string{"butter"},
			inventory:   []string{"unsalted butter"},
			percentage:  100,
			matched:     []string{"butter"},
			missing:     []string{},
		},
		{
			name:        "case and punctuation insensitive",
			ingredients: []string{"Flour, sifted", "Crème fraîche"},
			inventory:   []string{"FLOUR", "creme fraiche"},
			percentage:  100,
			matched:     []string{"Flour, sifted", "Crème fraîche"},
			missing:     []string{},
		},
		{
			name:        "blank inventory entries ignored",
			ingredients: []string{"salt", "pepper"},
			inventory:   []string{"", "  ", "!!"},
			percentage:  0,
			matched:     []string{},
			missing:     []string{"salt", "pepper"},
		},
		{
			name:        "duplicates reported once",
			ingredients: []string{"egg", "egg", "milk"},
			inventory:   []string{"egg"},
			percentage:  67,
			matched:     []string{"egg"},
			missing:     []string{"milk"},
		},
		{
			name:        "rounds half up",
			ingredients: []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8"},
			inventory:   []string{"a1"},
			percentage:  13,
			matched:     []string{"a1"},
			missing:     []string{"b2", "c3", "d4", "e5", "f6", "g7", "h8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := Match(tt.ingredients, tt.inventory)
			assert.Equal(t, tt.percentage, rm.MatchPercentage)
			assert.Equal(t, tt.matched, rm.MatchedIngredients)
			assert.Equal(t, tt.missing, rm.MissingIngredients)
		})
	}
}

func TestMatchPercentageBounds(t *testing.T) {
	inventories := [][]string{nil, {"rice"}, {"rice", "beans", "onion"}, {"r"}}
	for _, inv := range inventories {
		rm := Match([]string{"rice", "black beans", "onion", "garlic"}, inv)
		assert.GreaterOrEqual(t, rm.MatchPercentage, 0)
		assert.LessOrEqual(t, rm.MatchPercentage, 100)
	}
}

func TestMatchSingularization(t *testing.T) {
	ingredients := []string{"tomatoes", "cherries", "glass noodles"}
	inventory := []string{"tomato", "cherry", "glass noodle"}

	plain := New().Match(ingredients, inventory)
	assert.Equal(t, []string{"cherries"}, plain.MissingIngredients)

	rm := New(WithSingularization(true)).Match(ingredients, inventory)
	assert.Equal(t, 100, rm.MatchPercentage)
	assert.Empty(t, rm.MissingIngredients)
}

func TestSingular(t *testing.T) {
	tests := map[string]string{
		"berries":  "berry",
		"potatoes": "potato",
		"onions":   "onion",
		"glass":    "glass",
		"peas":     "pea",
		"eggs":     "egg",
		"gas":      "gas",
		"rice":     "rice",
	}
	for in, want := range tests {
		assert.Equal(t, want, singular(in), in)
	}
}

func TestMatchSimilarityFallback(t *testing.T) {
	ingredients := []string{"parmesan"}
	inventory := []string{"parmesean"}

	assert.Equal(t, 0, New().Match(ingredients, inventory).MatchPercentage)
	assert.Equal(t, 100, New(WithSimilarityFallback(0.8)).Match(ingredients, inventory).MatchPercentage)
	assert.Equal(t, 0, New(WithSimilarityFallback(0.95)).Match(ingredients, inventory).MatchPercentage)
}

func TestMatchRecipe(t *testing.T) {
	r := Recipe{
		ID:                    "omelette",
		Name:                  "Omelette",
		Ingredients:           []string{"3 large eggs", "50 ml whole milk", "1 pinch of salt", "chives"},
		IngredientsNormalized: []string{"egg", "milk", "salt"},
		MinIngredients:        2,
	}

	rm := New().MatchRecipe(r, []string{"egg", "milk"})
	assert.Equal(t, "omelette", rm.RecipeID)
	assert.Equal(t, "Omelette", rm.RecipeName)
	assert.Equal(t, []string{"egg", "milk"}, rm.MatchedIngredients)
	assert.Equal(t, []string{"salt"}, rm.MissingIngredients)
	assert.Equal(t, 2, rm.MissingCount, "missing counted against the written list")
	assert.Equal(t, 50, rm.MatchPercentage)
}

func TestRank(t *testing.T) {
	recipes := []Recipe{
		{ID: "pancakes", Name: "Pancakes", Ingredients: []string{"flour", "eggs", "milk", "sugar"}, MinIngredients: 2},
		{ID: "fried-rice", Name: "Fried Rice", Ingredients: []string{"rice", "eggs", "soy sauce"}, MinIngredients: 2},
		{ID: "boiled-egg", Name: "Boiled Egg", Ingredients: []string{"eggs"}, MinIngredients: 1},
		{ID: "risotto", Name: "Risotto", Ingredients: []string{"rice", "parmesan", "onion", "stock"}, MinIngredients: 3},
		{ID: "crepes", Name: "Crepes", Ingredients: []string{"flour", "eggs", "milk", "butter"}, MinIngredients: 2},
	}
	inventory := []string{"egg", "milk", "flour", "rice"}

	t.Run("filters and orders", func(t *testing.T) {
		got := New().Rank(recipes, inventory, RankOptions{})
		ids := make([]string, 0, len(got))
		for _, rm := range got {
			ids = append(ids, rm.RecipeID)
		}
		// risotto has one match and needs three
		assert.Equal(t, []string{"boiled-egg", "crepes", "pancakes", "fried-rice"}, ids)
		assert.Equal(t, 100, got[0].MatchPercentage)
		assert.Equal(t, 75, got[1].MatchPercentage)
		assert.Equal(t, 67, got[3].MatchPercentage)
	})

	t.Run("minimum percentage", func(t *testing.T) {
		got := New().Rank(recipes, inventory, RankOptions{MinMatchPercentage: 70})
		require.Len(t, got, 3)
		for _, rm := range got {
			assert.GreaterOrEqual(t, rm.MatchPercentage, 70)
		}
	})

	t.Run("limit", func(t *testing.T) {
		got := New().Rank(recipes, inventory, RankOptions{Limit: 2})
		require.Len(t, got, 2)
		assert.Equal(t, "boiled-egg", got[0].RecipeID)
	})

	t.Run("empty inventory", func(t *testing.T) {
		got := New().Rank(recipes, nil, RankOptions{})
		assert.Empty(t, got)
	})

	t.Run("zero minimum keeps unmatched recipes", func(t *testing.T) {
		got := New().Rank([]Recipe{{ID: "x", Ingredients: []string{"saffron"}}}, inventory, RankOptions{})
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].MatchPercentage)
	})
}

func BenchmarkRank(b *testing.B) {
	recipes := make([]Recipe, 0, 200)
	for i := range 200 {
		recipes = append(recipes, Recipe{
			ID:          string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Ingredients: []string{"2 cups flour", "3 eggs", "1 cup milk", "pinch of salt", "butter", "sugar"},
		})
	}
	inventory := []string{"flour", "egg", "milk", "salt"}
	m := New()

	b.ResetTimer()
	for b.Loop() {
		m.Rank(recipes, inventory, RankOptions{})
	}
}
