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
	"regexp"
	"strings"
)

// Receipt lines carry label prefixes that say nothing about the product itself
// ("GO BIO TOMATEN", "BIO-GURKEN GO BIO"). Patterns run in order.
var marketingTerms = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^go\s+bio\b[-\s]*`),
	regexp.MustCompile(`(?i)^bio\b[-\s]*`),
	regexp.MustCompile(`(?i)^organic\b\s*`),
	regexp.MustCompile(`(?i)^eco\b\s*`),
	regexp.MustCompile(`(?i)^fair\s+trade\b\s*`),

	regexp.MustCompile(`(?i)\s+go\s+bio$`),
	regexp.MustCompile(`(?i)\s+bio$`),
	regexp.MustCompile(`(?i)\s+organic$`),
	regexp.MustCompile(`(?i)\s+eco$`),

	regexp.MustCompile(`(?i)\s+bio\s+`),
	regexp.MustCompile(`(?i)\s+go\s+`),
	regexp.MustCompile(`(?i)\s+organic\s+`),
}

var multiSpace = regexp.MustCompile(`\s+`)

// CleanMarketingTerms strips organic/eco labelling from a scanned product name.
// If nothing but labels remain, the trimmed input is returned unchanged.
func CleanMarketingTerms(name string) string {
	cleaned := strings.TrimSpace(name)
	for _, p := range marketingTerms {
		cleaned = p.ReplaceAllString(cleaned, " ")
	}
	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return strings.TrimSpace(name)
	}
	return cleaned
}
