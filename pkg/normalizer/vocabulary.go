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
	"github.com/fridgeware/pantry/pkg/similarity"
)

// Ingredient is one canonical vocabulary entry.
type Ingredient struct {
	// Name is the canonical, generic ingredient name (e.g. "mushroom").
	Name string `json:"name" yaml:"name" validate:"required"`

	// Synonyms are alternative spellings and translations (e.g. "champignon", "pilz").
	Synonyms []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`

	// Category is a free-form grouping such as "vegetables" or "dairy".
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

type term struct {
	raw  string
	norm string
}

type entry struct {
	Ingredient
	name     term
	synonyms []term
}

// Vocabulary is an immutable, ordered set of canonical ingredients.
// Insertion order is significant: it breaks ties in partial and fuzzy matching.
type Vocabulary struct {
	entries  []entry
	exact    map[string]int
	synonyms map[string]int
}

// NewVocabulary builds a Vocabulary from ingredients in the given order.
// Entries with an empty name are ignored; a repeated canonical name keeps its first
// position. A synonym shared by several entries resolves to the earliest one.
func NewVocabulary(items []Ingredient) *Vocabulary {
	v := &Vocabulary{
		entries:  make([]entry, 0, len(items)),
		exact:    make(map[string]int, len(items)),
		synonyms: make(map[string]int),
	}

	for _, it := range items {
		n := similarity.Normalize(it.Name)
		if n == "" {
			continue
		}
		if _, dup := v.exact[n]; dup {
			continue
		}

		e := entry{
			Ingredient: Ingredient{
				Name:     it.Name,
				Category: it.Category,
				Synonyms: append([]string(nil), it.Synonyms...),
			},
			name: term{raw: it.Name, norm: n},
		}
		for _, s := range it.Synonyms {
			sn := similarity.Normalize(s)
			if sn == "" {
				continue
			}
			e.synonyms = append(e.synonyms, term{raw: s, norm: sn})
		}

		idx := len(v.entries)
		v.entries = append(v.entries, e)
		v.exact[n] = idx
	}

	for idx, e := range v.entries {
		for _, s := range e.synonyms {
			if _, taken := v.synonyms[s.norm]; !taken {
				v.synonyms[s.norm] = idx
			}
		}
	}

	return v
}

// Len returns the number of canonical entries.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.entries)
}

// Names returns canonical names in insertion order.
func (v *Vocabulary) Names() []string {
	if v == nil {
		return nil
	}
	names := make([]string, len(v.entries))
	for i, e := range v.entries {
		names[i] = e.Name
	}
	return names
}

// Ingredients returns a copy of the entries in insertion order.
func (v *Vocabulary) Ingredients() []Ingredient {
	if v == nil {
		return nil
	}
	out := make([]Ingredient, len(v.entries))
	for i, e := range v.entries {
		out[i] = Ingredient{
			Name:     e.Name,
			Synonyms: append([]string(nil), e.Synonyms...),
			Category: e.Category,
		}
	}
	return out
}

// Resolve looks name up as a canonical name first, then as a synonym.
// It returns the canonical ingredient and which of the two matched.
func (v *Vocabulary) Resolve(name string) (Ingredient, Method, bool) {
	if v == nil {
		return Ingredient{}, MethodNone, false
	}
	n := similarity.Normalize(name)
	if idx, ok := v.exact[n]; ok {
		return v.entries[idx].Ingredient, MethodExact, true
	}
	if idx, ok := v.synonyms[n]; ok {
		return v.entries[idx].Ingredient, MethodSynonym, true
	}
	return Ingredient{}, MethodNone, false
}
