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

package pantry

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/fridgeware/pantry/pkg/classifier"
	"github.com/fridgeware/pantry/pkg/config"
	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/normalizer"
	"github.com/fridgeware/pantry/pkg/receipt"
	"github.com/fridgeware/pantry/pkg/recipecache"
	"github.com/fridgeware/pantry/pkg/store"
	"github.com/fridgeware/pantry/pkg/suggestion"
)

// Option configures New.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	version    string
	httpClient *http.Client
}

// WithLogger sets the logger handed to every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithVersion is stamped on every result header.
func WithVersion(v string) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithHTTPClient replaces the client used by HTTP classifier backends.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// Services holds the wired components.
type Services struct {
	Config      *config.Config
	Parser      *receipt.Parser
	Normalizer  *normalizer.Normalizer
	Suggestions *suggestion.Service

	db         *store.DB
	classifier classifier.Backend
	logger     *slog.Logger
}

// New builds every component described by cfg. The caller must Close the
// result.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Services, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "configuration is required")
	}
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	s := &Services{Config: cfg, logger: o.logger}

	var (
		mappings    normalizer.Store = normalizer.NewMemoryStore()
		suggestions recipecache.Store
	)
	if cfg.Storage.Path != "" {
		db, err := store.Open(ctx, cfg.Storage.Path, store.WithLogger(o.logger))
		if err != nil {
			return nil, err
		}
		s.db = db
		mappings = store.NewMappingStore(db)
		suggestions = store.NewSuggestionStore(db)
	}

	vocab := cfg.NewVocabulary()

	copts := []classifier.Option{classifier.WithLogger(o.logger)}
	if o.httpClient != nil {
		copts = append(copts, classifier.WithHTTPClient(o.httpClient))
	}
	backend, err := classifier.New(ctx, cfg.Classifier, vocab, copts...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.classifier = backend

	nopts := append(cfg.NormalizerOptions(),
		normalizer.WithStore(mappings),
		normalizer.WithLogger(o.logger),
		normalizer.WithVersion(o.version),
	)
	if backend != nil {
		nopts = append(nopts, normalizer.WithClassifier(backend))
	}
	s.Normalizer = normalizer.New(vocab, nopts...)

	s.Parser = receipt.NewParser(cfg.Receipt,
		receipt.WithLogger(o.logger),
		receipt.WithVersion(o.version))

	cache := recipecache.New(suggestions,
		recipecache.WithLogger(o.logger),
		recipecache.WithDefaultTTL(cfg.RecipeCache.TTLMinutes))
	s.Suggestions = suggestion.New(cfg.Recipes, cache,
		suggestion.WithMatcher(cfg.NewMatcher()),
		suggestion.WithNormalizer(s.Normalizer),
		suggestion.WithRankOptions(cfg.RankOptions()),
		suggestion.WithLogger(o.logger),
		suggestion.WithVersion(o.version))

	o.logger.Debug("services ready",
		"storage", storageName(cfg.Storage.Path),
		"classifier", backendName(backend),
		"ingredients", vocab.Len(),
		"recipes", len(cfg.Recipes))
	return s, nil
}

// PruneResult counts entries removed by Prune.
type PruneResult struct {
	Mappings    int `json:"mappings" yaml:"mappings"`
	Suggestions int `json:"suggestions" yaml:"suggestions"`
}

// Prune removes expired normalization mappings and stale suggestion batches.
func (s *Services) Prune(ctx context.Context) (*PruneResult, error) {
	mappings, err := s.Normalizer.PruneExpired(ctx)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.Suggestions.Prune(ctx)
	if err != nil {
		return nil, err
	}
	return &PruneResult{Mappings: mappings, Suggestions: suggestions}, nil
}

// Ready reports whether the backing database answers. It always succeeds
// for in-memory caches.
func (s *Services) Ready(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Ping(ctx)
}

// Persistent reports whether caches are backed by a database.
func (s *Services) Persistent() bool {
	return s.db != nil
}

// Close releases the classifier backend and the database.
func (s *Services) Close() error {
	var errs []error
	if s.classifier != nil {
		if err := s.classifier.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func storageName(path string) string {
	if path == "" {
		return "memory"
	}
	return path
}

func backendName(b classifier.Backend) string {
	if b == nil {
		return classifier.BackendNone
	}
	return b.Name()
}
