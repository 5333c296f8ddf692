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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/normalizer"
)

// Ollama defaults.
const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "llama3.1:8b"
)

// OllamaConfig configures the Ollama backend.
type OllamaConfig struct {
	URL         string  `json:"url" yaml:"url" validate:"omitempty,url"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Ollama classifies names with a local Ollama server's generate endpoint.
type Ollama struct {
	cfg     OllamaConfig
	vocab   *normalizer.Vocabulary
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewOllama returns an Ollama backend answering from vocab.
func NewOllama(cfg OllamaConfig, vocab *normalizer.Vocabulary, opts ...Option) *Ollama {
	o := newOptions(opts)
	if cfg.URL == "" {
		cfg.URL = DefaultOllamaURL
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}
	return &Ollama{
		cfg:     cfg,
		vocab:   vocab,
		client:  o.httpClient,
		limiter: o.limiter,
		logger:  o.logger,
	}
}

// Name returns the backend name.
func (c *Ollama) Name() string { return BackendOllama }

// Close releases idle connections.
func (c *Ollama) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Classify asks the model for the canonical ingredient behind name.
func (c *Ollama) Classify(ctx context.Context, name string) (*normalizer.Classification, error) {
	if err := wait(ctx, c.limiter, BackendOllama); err != nil {
		return nil, err
	}
	start := time.Now()

	body, err := json.Marshal(generateRequest{
		Model:   c.cfg.Model,
		Prompt:  buildPrompt(c.vocab, name),
		Options: generateOptions{Temperature: c.cfg.Temperature},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode generate request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create generate request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		observe(BackendOllama, "error", start)
		return nil, errors.WrapWithContext(errors.ErrCodeExternalUnavailable, "ollama request failed", err,
			map[string]any{"url": c.cfg.URL})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observe(BackendOllama, "error", start)
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewWithContext(errors.ErrCodeExternalUnavailable,
			fmt.Sprintf("ollama returned %s", resp.Status),
			map[string]any{"body": strings.TrimSpace(string(msg))})
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		observe(BackendOllama, "error", start)
		return nil, errors.Wrap(errors.ErrCodeExternalUnavailable, "failed to decode ollama response", err)
	}

	res := resolve(c.vocab, out.Response)
	if res.NormalizedName == nil {
		observe(BackendOllama, "unknown", start)
		c.logger.Debug("ollama answer not in vocabulary", "scannedName", name, "answer", out.Response)
		return res, nil
	}
	observe(BackendOllama, "ok", start)
	c.logger.Debug("ollama classified ingredient", "scannedName", name, "normalizedName", *res.NormalizedName)
	return res, nil
}
