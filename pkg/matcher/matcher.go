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
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/fridgeware/pantry/pkg/similarity"
)

// Option configures a Matcher.
type Option func(*Matcher)

// WithSingularization folds simple English plurals per token before
// comparing ("tomatoes" and "tomato" both become "tomato").
func WithSingularization(enabled bool) Option {
	return func(m *Matcher) {
		m.singularize = enabled
	}
}

// WithSimilarityFallback also counts an ingredient as matched when its
// similarity to an inventory entry reaches threshold. Zero disables it.
func WithSimilarityFallback(threshold float64) Option {
	return func(m *Matcher) {
		if threshold >= 0 && threshold <= 1 {
			m.fallback = threshold
		}
	}
}

// Matcher scores recipes against an inventory. The zero configuration uses
// bidirectional substring containment only. A Matcher is immutable and safe
// for concurrent use.
type Matcher struct {
	singularize bool
	fallback    float64
}

// New returns a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMatcher = New()

// Match scores recipeIngredients against inventory with the default rules.
func Match(recipeIngredients, inventory []string) RecipeMatch {
	return defaultMatcher.Match(recipeIngredients, inventory)
}

// Match reports which recipe ingredients are covered by inventory. Both sides
// are loosely normalized; an ingredient matches when it contains an inventory
// entry or is contained in one. An empty ingredient list scores 0.
func (m *Matcher) Match(recipeIngredients, inventory []string) RecipeMatch {
	return m.score(recipeIngredients, len(recipeIngredients), m.prepare(inventory))
}

// MatchRecipe matches r, preferring IngredientsNormalized when present. The
// percentage is always relative to the original ingredient count.
func (m *Matcher) MatchRecipe(r Recipe, inventory []string) RecipeMatch {
	return m.matchRecipe(r, m.prepare(inventory))
}

func (m *Matcher) matchRecipe(r Recipe, inv []string) RecipeMatch {
	ingredients := r.Ingredients
	if len(r.IngredientsNormalized) > 0 {
		ingredients = r.IngredientsNormalized
	}
	rm := m.score(ingredients, len(r.Ingredients), inv)
	rm.RecipeID = r.ID
	rm.RecipeName = r.Name
	return rm
}

// Rank matches every recipe, keeps those with at least MinIngredients
// matches and the requested percentage, and orders them by fewest missing
// ingredients, then highest percentage, then recipe ID.
func (m *Matcher) Rank(recipes []Recipe, inventory []string, opts RankOptions) []RecipeMatch {
	inv := m.prepare(inventory)

	out := make([]RecipeMatch, 0, len(recipes))
	for _, r := range recipes {
		rm := m.matchRecipe(r, inv)
		matched := len(r.Ingredients) - rm.MissingCount
		if matched < r.MinIngredients || rm.MatchPercentage < opts.MinMatchPercentage {
			continue
		}
		out = append(out, rm)
	}

	slices.SortStableFunc(out, func(a, b RecipeMatch) int {
		if c := cmp.Compare(a.MissingCount, b.MissingCount); c != 0 {
			return c
		}
		if c := cmp.Compare(b.MatchPercentage, a.MatchPercentage); c != 0 {
			return c
		}
		return cmp.Compare(a.RecipeID, b.RecipeID)
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// prepare normalizes inventory once per call, dropping entries that
// normalize to nothing since an empty string is a substring of everything.
func (m *Matcher) prepare(inventory []string) []string {
	inv := make([]string, 0, len(inventory))
	for _, name := range inventory {
		if n := m.normalize(name); n != "" {
			inv = append(inv, n)
		}
	}
	return inv
}

func (m *Matcher) normalize(s string) string {
	n := similarity.NormalizeLoose(s)
	if !m.singularize || n == "" {
		return n
	}
	tokens := strings.Split(n, " ")
	for i, t := range tokens {
		tokens[i] = singular(t)
	}
	return strings.Join(tokens, " ")
}

// score matches ingredients against prepared inventory. total is the
// denominator of the percentage.
func (m *Matcher) score(ingredients []string, total int, inv []string) RecipeMatch {
	rm := RecipeMatch{
		MatchedIngredients: []string{},
		MissingIngredients: []string{},
	}

	matched := 0
	for _, ing := range ingredients {
		if m.covered(m.normalize(ing), inv) {
			matched++
			rm.MatchedIngredients = appendUnique(rm.MatchedIngredients, ing)
		} else {
			rm.MissingIngredients = appendUnique(rm.MissingIngredients, ing)
		}
	}

	matched = min(matched, total)
	rm.MissingCount = total - matched
	rm.MatchPercentage = percentage(matched, total)
	return rm
}

func (m *Matcher) covered(ing string, inv []string) bool {
	if ing == "" {
		return false
	}
	for _, item := range inv {
		if strings.Contains(ing, item) || strings.Contains(item, ing) {
			return true
		}
	}
	if m.fallback > 0 {
		for _, item := range inv {
			if similarity.Normalized(ing, item) >= m.fallback {
				return true
			}
		}
	}
	return false
}

func percentage(matched, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(total) * 100))
}

// singular strips a plural suffix from tokens longer than three letters.
func singular(t string) string {
	if len(t) <= 3 {
		return t
	}
	switch {
	case strings.HasSuffix(t, "ies"):
		return t[:len(t)-3] + "y"
	case strings.HasSuffix(t, "ss"):
		return t
	case strings.HasSuffix(t, "es"):
		return t[:len(t)-2]
	case strings.HasSuffix(t, "s"):
		return t[:len(t)-1]
	}
	return t
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}
