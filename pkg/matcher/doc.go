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

// Package matcher scores recipes against a normalized inventory.
//
// Recipe ingredient strings are free text ("2 cups raw white rice") while
// inventory names are canonical ("rice"), so matching uses bidirectional
// substring containment over loosely normalized forms instead of edit
// distance. Singularization and a similarity fallback can be enabled for
// catalogs whose wording drifts further from the vocabulary.
//
//	rm := matcher.Match([]string{"200g flour", "eggs", "milk"}, []string{"flour", "milk"})
//	// rm.MatchPercentage == 67, rm.MissingIngredients == ["eggs"]
//
// Rank applies the per-recipe minimum ingredient count and orders
// suggestions by what the user would still have to buy.
package matcher
