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

package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"lowercase and trim", "  Milch  ", "milch"},
		{"collapse inner whitespace", "Bio   EHL\tChampignon", "bio ehl champignon"},
		{"strip diacritics", "Jalapeño Crème Brûlée", "jalapeno creme brulee"},
		{"german umlauts", "KÄSE GOUDA", "kase gouda"},
		{"keeps punctuation", "tomaten, passiert", "tomaten, passiert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeLoose(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips punctuation", "200g flour, sifted.", "200g flour sifted"},
		{"symbols", "1/2 cup (120ml) milk", "1 2 cup 120ml milk"},
		{"leading punctuation", "- eggs", "eggs"},
		{"accents", "Piñones", "pinones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLoose(tt.in))
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"tomate", "tomato", 1},
		{"äpfel", "apfel", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "milk", "milk", 1.0},
		{"equal after normalization", "  MILK ", "milk", 1.0},
		{"diacritics ignored", "Jalapeño", "jalapeno", 1.0},
		{"empty left", "", "milk", 0.0},
		{"empty right", "milk", "", 0.0},
		{"whitespace is empty", "   ", "milk", 0.0},
		{"one substitution", "tomate", "tomato", 1 - 1.0/6},
		{"kitten sitting", "kitten", "sitting", 1 - 3.0/7},
		{"disjoint", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Reflexive(t *testing.T) {
	for _, s := range []string{"", "a", "Bio EHL Champignon", "Käse", "   spaced   out  "} {
		assert.Equal(t, 1.0, Similarity(s, s), "similarity(%q, %q)", s, s)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"mushroom", "champignon"},
		{"tomaten", "tomato"},
		{"", "x"},
		{"Milch Frisch", "milk"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "pair %q", p)
	}
}

func FuzzSimilarity(f *testing.F) {
	f.Add("milk", "milch")
	f.Add("", "x")
	f.Add("Jalapeño", "jalapeno")
	f.Add("GO BIO TOMATEN", "tomato")

	f.Fuzz(func(t *testing.T, a, b string) {
		ab := Similarity(a, b)
		ba := Similarity(b, a)
		if math.IsNaN(ab) || ab < 0 || ab > 1 {
			t.Fatalf("similarity(%q, %q) = %v out of [0,1]", a, b, ab)
		}
		if ab != ba {
			t.Fatalf("similarity not symmetric: %v vs %v", ab, ba)
		}
		if Similarity(a, a) != 1.0 {
			t.Fatalf("similarity(%q, %q) != 1", a, a)
		}
	})
}

func BenchmarkSimilarity(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Similarity("Bio EHL Champignon braun", "mushroom")
	}
}

func BenchmarkNormalized(b *testing.B) {
	x, y := Normalize("Bio EHL Champignon braun"), Normalize("mushroom")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Normalized(x, y)
	}
}
