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

package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fridgeware/pantry/pkg/defaults"
	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/normalizer"
)

// Backend names accepted in configuration.
const (
	BackendNone   = "none"
	BackendOllama = "ollama"
	BackendVertex = "vertex"
)

// unknownAnswer is what backends are asked to reply when nothing fits.
const unknownAnswer = "unknown"

// Config selects and configures the external classification backend.
type Config struct {
	Backend string       `json:"backend" yaml:"backend" validate:"omitempty,oneof=none ollama vertex"`
	Ollama  OllamaConfig `json:"ollama" yaml:"ollama"`
	Vertex  VertexConfig `json:"vertex" yaml:"vertex"`
}

// Backend is a closable normalizer.Classifier.
type Backend interface {
	normalizer.Classifier
	Name() string
	Close() error
}

// Option configures a backend.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
	limiter    *rate.Limiter
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient replaces the HTTP client used by HTTP backends.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithRateLimit caps outgoing requests at rps with the given burst.
// A non-positive rps removes the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		if rps <= 0 {
			o.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:     slog.Default(),
		httpClient: &http.Client{Timeout: defaults.ClassifierTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaults.ClassifierRateLimit), defaults.ClassifierRateLimit),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// New builds the backend named by cfg.Backend. It returns nil for an empty
// or "none" backend.
func New(ctx context.Context, cfg Config, vocab *normalizer.Vocabulary, opts ...Option) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendOllama:
		return NewOllama(cfg.Ollama, vocab, opts...), nil
	case BackendVertex:
		v, err := NewVertex(ctx, cfg.Vertex, vocab, opts...)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidInput,
			fmt.Sprintf("unknown classifier backend %q", cfg.Backend),
			map[string]any{"supported": []string{BackendNone, BackendOllama, BackendVertex}})
	}
}

// wait blocks on the limiter and reports cancellation as an external failure.
func wait(ctx context.Context, l *rate.Limiter, backend string) error {
	if err := l.Wait(ctx); err != nil {
		classifierRequests.WithLabelValues(backend, "throttled").Inc()
		return errors.Wrap(errors.ErrCodeExternalUnavailable, "classifier rate limit wait aborted", err)
	}
	return nil
}

// resolve maps a raw model answer onto the vocabulary. Answers naming no
// vocabulary entry are treated as no result.
func resolve(vocab *normalizer.Vocabulary, raw string) *normalizer.Classification {
	answer := cleanAnswer(raw)
	if answer == "" || answer == unknownAnswer {
		return &normalizer.Classification{}
	}
	ing, _, ok := vocab.Resolve(answer)
	if !ok {
		return &normalizer.Classification{}
	}
	name := ing.Name
	return &normalizer.Classification{NormalizedName: &name}
}

// cleanAnswer keeps the first non-empty line of a model reply and strips
// code fences, quotes and trailing punctuation.
func cleanAnswer(raw string) string {
	for line := range strings.Lines(raw) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.Trim(line, "\"'`*")
		line = strings.TrimRight(line, ".!")
		return strings.ToLower(strings.TrimSpace(line))
	}
	return ""
}

func observe(backend, outcome string, start time.Time) {
	classifierRequests.WithLabelValues(backend, outcome).Inc()
	classifierDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}
