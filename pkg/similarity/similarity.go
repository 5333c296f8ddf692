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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips diacritics, collapses runs of whitespace to a
// single space and trims the result.
func Normalize(s string) string {
	return collapse(stripMarks(strings.ToLower(s)), false)
}

// NormalizeLoose applies Normalize and additionally replaces punctuation and
// symbols with spaces. Recipe ingredient strings carry free-text quantities and
// units ("200g flour, sifted") so the matcher compares on this form.
func NormalizeLoose(s string) string {
	return collapse(stripMarks(strings.ToLower(s)), true)
}

// Distance returns the Levenshtein edit distance between a and b in runes,
// with unit cost for insertion, deletion and substitution. Inputs are compared as given.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity returns 1 - distance/max(len) over the normalized forms of a and b.
// The result is always in [0,1]: 1.0 when the normalized strings are equal,
// 0.0 when either is empty.
func Similarity(a, b string) float64 {
	return Normalized(Normalize(a), Normalize(b))
}

// Normalized scores two strings that are already normalized. Callers comparing
// one name against a whole vocabulary normalize once and use this to avoid
// repeating the work per candidate.
func Normalized(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0.0
	}
	longest := max(la, lb)
	score := 1 - float64(Distance(a, b))/float64(longest)
	if score < 0 {
		return 0
	}
	return score
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func collapse(s string, dropPunct bool) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) || (dropPunct && (unicode.IsPunct(r) || unicode.IsSymbol(r))) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
