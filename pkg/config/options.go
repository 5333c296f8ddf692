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

package config

import (
	"time"

	"github.com/fridgeware/pantry/pkg/matcher"
	"github.com/fridgeware/pantry/pkg/normalizer"
)

// NewVocabulary builds the normalizer vocabulary.
func (c *Config) NewVocabulary() *normalizer.Vocabulary {
	return normalizer.NewVocabulary(c.Vocabulary)
}

// NormalizerOptions translates the normalizer section. Store, classifier
// and logger options are added by the caller.
func (c *Config) NormalizerOptions() []normalizer.Option {
	n := c.Normalizer
	return []normalizer.Option{
		normalizer.WithCacheTTL(time.Duration(n.CacheTTLDays) * 24 * time.Hour),
		normalizer.WithFuzzyThreshold(n.FuzzyThreshold),
		normalizer.WithLowConfidenceFloor(n.LowConfidenceFloor),
		normalizer.WithExternalMinScore(n.ExternalMinScore),
		normalizer.WithClassifierTimeout(time.Duration(n.ClassifierTimeoutSeconds) * time.Second),
		normalizer.WithBatchConcurrency(n.BatchConcurrency),
		normalizer.WithExternalByDefault(n.AllowExternal),
	}
}

// NewMatcher builds the recipe matcher.
func (c *Config) NewMatcher() *matcher.Matcher {
	return matcher.New(
		matcher.WithSingularization(c.Matcher.Singularize),
		matcher.WithSimilarityFallback(c.Matcher.SimilarityFallback),
	)
}

// RankOptions returns the ranking filters.
func (c *Config) RankOptions() matcher.RankOptions {
	return matcher.RankOptions{
		MinMatchPercentage: c.Matcher.MinMatchPercentage,
		Limit:              c.Matcher.Limit,
	}
}
