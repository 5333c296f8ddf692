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

package suggestion

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/header"
	"github.com/fridgeware/pantry/pkg/matcher"
	"github.com/fridgeware/pantry/pkg/normalizer"
	"github.com/fridgeware/pantry/pkg/recipecache"
)

// Option configures a Service.
type Option func(*Service)

// WithMatcher replaces the default matcher.
func WithMatcher(m *matcher.Matcher) Option {
	return func(s *Service) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithNormalizer enables Request.Normalize.
func WithNormalizer(n *normalizer.Normalizer) Option {
	return func(s *Service) {
		s.normalizer = n
	}
}

// WithRankOptions sets the filters applied when a request has none.
func WithRankOptions(o matcher.RankOptions) Option {
	return func(s *Service) {
		s.rank = o
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithVersion is reported in result headers.
func WithVersion(v string) Option {
	return func(s *Service) {
		s.version = v
	}
}

// WithClock replaces time.Now for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service turns an inventory into ranked recipe suggestions, serving
// repeated inventories from the recipe cache.
type Service struct {
	recipes    []matcher.Recipe
	cache      *recipecache.Cache
	matcher    *matcher.Matcher
	normalizer *normalizer.Normalizer
	rank       matcher.RankOptions
	logger     *slog.Logger
	version    string
	now        func() time.Time
}

// New returns a Service ranking recipes. A nil cache disables caching.
func New(recipes []matcher.Recipe, cache *recipecache.Cache, opts ...Option) *Service {
	s := &Service{
		recipes: slices.Clone(recipes),
		cache:   cache,
		matcher: matcher.New(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request asks for suggestions for an inventory.
type Request struct {
	// Inventory holds ingredient names, canonical or as scanned.
	Inventory []string `json:"inventory" yaml:"inventory" validate:"required,min=1,max=500,dive,required,max=200"`

	// Normalize maps each name through the normalizer first.
	Normalize bool `json:"normalize,omitempty" yaml:"normalize,omitempty"`

	// AllowExternal lets normalization consult the external classifier.
	AllowExternal bool `json:"allowExternal,omitempty" yaml:"allowExternal,omitempty"`

	// MinMatchPercentage and Limit override the service defaults when set.
	MinMatchPercentage *int `json:"minMatchPercentage,omitempty" yaml:"minMatchPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Limit              *int `json:"limit,omitempty" yaml:"limit,omitempty" validate:"omitempty,gte=0"`

	// Refresh drops any cached batch before ranking.
	Refresh bool `json:"refresh,omitempty" yaml:"refresh,omitempty"`
}

// Result is a ranked suggestion list.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	InventoryHash string                `json:"inventoryHash" yaml:"inventoryHash"`
	Inventory     []string              `json:"inventory" yaml:"inventory"`
	Cached        bool                  `json:"cached" yaml:"cached"`
	Recipes       []matcher.RecipeMatch `json:"recipes" yaml:"recipes"`
}

// Suggest ranks the catalog against req.Inventory. The full ranking is
// cached per inventory hash; percentage and limit filters are applied on
// top so requests with different filters share one cache entry.
func (s *Service) Suggest(ctx context.Context, req Request) (*Result, error) {
	inventory, err := s.Inventory(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(inventory) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "inventory is empty")
	}

	hash := recipecache.InventoryHash(inventory)
	rank := func(context.Context) ([]matcher.RecipeMatch, error) {
		return s.matcher.Rank(s.recipes, inventory, matcher.RankOptions{}), nil
	}

	var (
		ranked []matcher.RecipeMatch
		cached bool
	)
	switch {
	case s.cache == nil:
		ranked, _ = rank(ctx)
	default:
		if req.Refresh {
			if err := s.cache.Invalidate(ctx, hash); err != nil {
				s.logger.Warn("recipe cache invalidation failed", "inventoryHash", hash, "error", err)
			}
		}
		ranked, cached, err = s.cache.GetOrCompute(ctx, hash, rank)
		if err != nil {
			return nil, err
		}
	}

	opts := s.rank
	if req.MinMatchPercentage != nil {
		opts.MinMatchPercentage = *req.MinMatchPercentage
	}
	if req.Limit != nil {
		opts.Limit = *req.Limit
	}

	res := &Result{
		InventoryHash: hash,
		Inventory:     inventory,
		Cached:        cached,
		Recipes:       filter(ranked, opts),
	}
	res.InitAt(header.KindSuggestions, s.version, s.now())

	s.logger.Debug("recipe suggestions ready",
		"inventoryHash", hash,
		"inventory", len(inventory),
		"recipes", len(res.Recipes),
		"cached", cached)
	return res, nil
}

// MatchReport scores one catalog recipe against an inventory.
type MatchReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Inventory []string            `json:"inventory" yaml:"inventory"`
	Match     matcher.RecipeMatch `json:"match" yaml:"match"`
}

// MatchRecipe scores the catalog recipe id against req.Inventory. It
// bypasses the cache and ignores the ranking filters.
func (s *Service) MatchRecipe(ctx context.Context, id string, req Request) (*MatchReport, error) {
	idx := slices.IndexFunc(s.recipes, func(r matcher.Recipe) bool { return r.ID == id })
	if idx < 0 {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "recipe not found",
			map[string]any{"recipeId": id})
	}

	inventory, err := s.Inventory(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(inventory) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "inventory is empty")
	}

	rep := &MatchReport{
		Inventory: inventory,
		Match:     s.matcher.MatchRecipe(s.recipes[idx], inventory),
	}
	rep.InitAt(header.KindMatchReport, s.version, s.now())
	return rep, nil
}

// Invalidate drops the cached batch for hash.
func (s *Service) Invalidate(ctx context.Context, hash string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, hash)
}

// Prune evicts every stale batch.
func (s *Service) Prune(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.EvictExpired(ctx, s.now())
}

// Recipes returns the number of catalog recipes.
func (s *Service) Recipes() int {
	return len(s.recipes)
}

// Inventory returns the names req asks to match: blank entries dropped and,
// when requested, each name normalized. Unmatched names are kept as given.
func (s *Service) Inventory(ctx context.Context, req Request) ([]string, error) {
	names := make([]string, 0, len(req.Inventory))
	for _, n := range req.Inventory {
		if normalizer.CacheKey(n) != "" {
			names = append(names, n)
		}
	}
	if !req.Normalize || s.normalizer == nil || len(names) == 0 {
		return names, nil
	}

	results, err := s.normalizer.NormalizeBatch(ctx, names, req.AllowExternal)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(results))
	for i, r := range results {
		if r.Matched() {
			out[i] = r.Name()
		} else {
			out[i] = names[i]
		}
	}
	return out, nil
}

// filter applies the percentage floor and limit to an already sorted list.
func filter(ranked []matcher.RecipeMatch, opts matcher.RankOptions) []matcher.RecipeMatch {
	out := make([]matcher.RecipeMatch, 0, len(ranked))
	for _, rm := range ranked {
		if rm.MatchPercentage < opts.MinMatchPercentage {
			continue
		}
		out = append(out, rm)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}
