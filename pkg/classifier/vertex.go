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
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/normalizer"
)

// DefaultVertexModel is the Gemini model used when none is configured.
const DefaultVertexModel = "gemini-1.5-flash"

// VertexConfig configures the Vertex AI backend. Empty fields fall back to
// GOOGLE_PROJECT_ID, GOOGLE_LOCATION and GOOGLE_CREDENTIALS_FILE through
// the config package.
type VertexConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	Location        string `json:"location" yaml:"location"`
	CredentialsFile string `json:"credentialsFile" yaml:"credentialsFile"`
	Model           string `json:"model" yaml:"model"`
}

type generateFunc func(ctx context.Context, prompt string) (string, error)

// Vertex classifies names with a Gemini model on Vertex AI.
type Vertex struct {
	client   *genai.Client
	generate generateFunc
	vocab    *normalizer.Vocabulary
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewVertex connects to Vertex AI.
func NewVertex(ctx context.Context, cfg VertexConfig, vocab *normalizer.Vocabulary, opts ...Option) (*Vertex, error) {
	if cfg.ProjectID == "" || cfg.Location == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "vertex classifier requires a project ID and location")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultVertexModel
	}

	var clientOpts []option.ClientOption
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location, clientOpts...)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeExternalUnavailable, "failed to create vertex client", err,
			map[string]any{"projectId": cfg.ProjectID, "location": cfg.Location})
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.1)
	model.SetCandidateCount(1)

	o := newOptions(opts)
	return &Vertex{
		client:   client,
		generate: modelGenerator(model),
		vocab:    vocab,
		limiter:  o.limiter,
		logger:   o.logger,
	}, nil
}

func modelGenerator(model *genai.GenerativeModel) generateFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
		return responseText(resp)
	}
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	c := resp.Candidates[0]
	if c.Content == nil || len(c.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

// Name returns the backend name.
func (v *Vertex) Name() string { return BackendVertex }

// Close closes the Vertex client.
func (v *Vertex) Close() error {
	if v.client == nil {
		return nil
	}
	return v.client.Close()
}

// Classify asks the model for the canonical ingredient behind name.
func (v *Vertex) Classify(ctx context.Context, name string) (*normalizer.Classification, error) {
	if err := wait(ctx, v.limiter, BackendVertex); err != nil {
		return nil, err
	}
	start := time.Now()

	text, err := v.generate(ctx, buildPrompt(v.vocab, name))
	if err != nil {
		observe(BackendVertex, "error", start)
		return nil, errors.Wrap(errors.ErrCodeExternalUnavailable, "vertex request failed", err)
	}

	res := resolve(v.vocab, text)
	if res.NormalizedName == nil {
		observe(BackendVertex, "unknown", start)
		v.logger.Debug("vertex answer not in vocabulary", "scannedName", name, "answer", text)
		return res, nil
	}
	observe(BackendVertex, "ok", start)
	v.logger.Debug("vertex classified ingredient", "scannedName", name, "normalizedName", *res.NormalizedName)
	return res, nil
}
