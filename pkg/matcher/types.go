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

// Recipe is a catalog entry that inventories are matched against.
type Recipe struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`

	// Ingredients is the list as written, possibly with quantities and units.
	// Match percentages are always computed over its length.
	Ingredients []string `json:"ingredients" yaml:"ingredients" validate:"dive,required"`

	// IngredientsNormalized, when present, is matched instead of Ingredients.
	IngredientsNormalized []string `json:"ingredientsNormalized,omitempty" yaml:"ingredientsNormalized,omitempty" validate:"omitempty,dive,required"`

	// MinIngredients is how many ingredients must be on hand before the
	// recipe is suggested at all.
	MinIngredients int `json:"minIngredients" yaml:"minIngredients" validate:"gte=0"`

	Instructions []string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// RecipeMatch scores one recipe against an inventory.
type RecipeMatch struct {
	RecipeID           string   `json:"recipeId" yaml:"recipeId"`
	RecipeName         string   `json:"recipeName,omitempty" yaml:"recipeName,omitempty"`
	MatchPercentage    int      `json:"matchPercentage" yaml:"matchPercentage"`
	MatchedIngredients []string `json:"matchedIngredients" yaml:"matchedIngredients"`
	MissingIngredients []string `json:"missingIngredients" yaml:"missingIngredients"`
	MissingCount       int      `json:"missingCount" yaml:"missingCount"`
}

// RankOptions filters and bounds Rank results.
type RankOptions struct {
	// MinMatchPercentage drops recipes scoring below it (0-100).
	MinMatchPercentage int `json:"minMatchPercentage" yaml:"minMatchPercentage" validate:"gte=0,lte=100"`

	// Limit caps the number of results. Zero means no limit.
	Limit int `json:"limit" yaml:"limit" validate:"gte=0"`
}
