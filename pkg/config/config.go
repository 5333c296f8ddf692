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
	"bytes"
	"context"
	_ "embed"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/fridgeware/pantry/pkg/classifier"
	"github.com/fridgeware/pantry/pkg/defaults"
	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/matcher"
	"github.com/fridgeware/pantry/pkg/normalizer"
	"github.com/fridgeware/pantry/pkg/receipt"
	"github.com/fridgeware/pantry/pkg/serializer"
)

// Environment variables that override file settings.
const (
	EnvDBPath          = "PANTRY_DB_PATH"
	EnvClassifier      = "PANTRY_CLASSIFIER"
	EnvOllamaURL       = "OLLAMA_URL"
	EnvGoogleProject   = "GOOGLE_PROJECT_ID"
	EnvGoogleLocation  = "GOOGLE_LOCATION"
	EnvGoogleCredsFile = "GOOGLE_CREDENTIALS_FILE"
)

//go:embed data/vocabulary.yaml
var defaultVocabulary []byte

//go:embed data/recipes.yaml
var defaultRecipes []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the pantry configuration document.
type Config struct {
	// Vocabulary lists canonical ingredients inline. VocabularyFile, when
	// set, is loaded instead. The embedded vocabulary is used when neither is.
	Vocabulary     []normalizer.Ingredient `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty" validate:"dive"`
	VocabularyFile string                  `json:"vocabularyFile,omitempty" yaml:"vocabularyFile,omitempty"`

	// Recipes is the catalog suggestions are ranked from, inline or from
	// RecipesFile. The embedded catalog is used when neither is set.
	Recipes     []matcher.Recipe `json:"recipes,omitempty" yaml:"recipes,omitempty" validate:"dive"`
	RecipesFile string           `json:"recipesFile,omitempty" yaml:"recipesFile,omitempty"`

	Receipt     receipt.Config    `json:"receipt" yaml:"receipt"`
	Normalizer  NormalizerConfig  `json:"normalizer" yaml:"normalizer"`
	Matcher     MatcherConfig     `json:"matcher" yaml:"matcher"`
	RecipeCache RecipeCacheConfig `json:"recipeCache" yaml:"recipeCache"`
	Storage     StorageConfig     `json:"storage" yaml:"storage"`
	Classifier  classifier.Config `json:"classifier" yaml:"classifier"`
}

// NormalizerConfig tunes the normalization cascade and its cache.
type NormalizerConfig struct {
	CacheTTLDays             int     `json:"cacheTTLDays" yaml:"cacheTTLDays" validate:"gte=0"`
	FuzzyThreshold           float64 `json:"fuzzyThreshold" yaml:"fuzzyThreshold" validate:"gte=0,lte=1"`
	LowConfidenceFloor       float64 `json:"lowConfidenceFloor" yaml:"lowConfidenceFloor" validate:"gte=0,lte=1"`
	ExternalMinScore         float64 `json:"externalMinScore" yaml:"externalMinScore" validate:"gte=0,lte=1"`
	ClassifierTimeoutSeconds int     `json:"classifierTimeoutSeconds" yaml:"classifierTimeoutSeconds" validate:"gte=0"`
	BatchConcurrency         int     `json:"batchConcurrency" yaml:"batchConcurrency" validate:"gte=0"`
	AllowExternal            bool    `json:"allowExternal" yaml:"allowExternal"`
}

// MatcherConfig tunes recipe matching and ranking.
type MatcherConfig struct {
	Singularize        bool    `json:"singularize" yaml:"singularize"`
	SimilarityFallback float64 `json:"similarityFallback" yaml:"similarityFallback" validate:"gte=0,lte=1"`
	MinMatchPercentage int     `json:"minMatchPercentage" yaml:"minMatchPercentage" validate:"gte=0,lte=100"`
	Limit              int     `json:"limit" yaml:"limit" validate:"gte=0"`
}

// RecipeCacheConfig sets the suggestion cache lifetime.
type RecipeCacheConfig struct {
	TTLMinutes int `json:"ttlMinutes" yaml:"ttlMinutes" validate:"gte=0"`
}

// StorageConfig locates the SQLite database. An empty path keeps both
// caches in memory.
type StorageConfig struct {
	Path string `json:"path" yaml:"path"`
}

// VocabularyDocument is the file format of VocabularyFile.
type VocabularyDocument struct {
	Ingredients []normalizer.Ingredient `json:"ingredients" yaml:"ingredients" validate:"dive"`
}

// RecipeCatalog is the file format of RecipesFile.
type RecipeCatalog struct {
	Recipes []matcher.Recipe `json:"recipes" yaml:"recipes" validate:"dive"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the configuration at path (a local file or an http(s) URL),
// resolves referenced vocabulary and recipe files, applies defaults and
// environment overrides and validates the result. An empty path yields
// the built-in configuration with environment overrides.
func Load(ctx context.Context, path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		loaded, err := serializer.FromFile[Config](ctx, path)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidInput, "failed to load config", err,
				map[string]any{"path": path})
		}
		c = loaded
	}

	if err := c.resolveFiles(ctx); err != nil {
		return nil, err
	}
	c.applyDefaults()
	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("configuration loaded", "path", path,
		"ingredients", len(c.Vocabulary), "recipes", len(c.Recipes), "classifier", c.Classifier.Backend)
	return c, nil
}

// Validate checks struct constraints and reports the first offending fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidInput, "invalid configuration", err,
			map[string]any{"fields": fieldErrors(err)})
	}
	return nil
}

func (c *Config) resolveFiles(ctx context.Context) error {
	if c.VocabularyFile != "" {
		doc, err := serializer.FromFile[VocabularyDocument](ctx, c.VocabularyFile)
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidInput, "failed to load vocabulary", err,
				map[string]any{"path": c.VocabularyFile})
		}
		c.Vocabulary = doc.Ingredients
	}
	if c.RecipesFile != "" {
		cat, err := serializer.FromFile[RecipeCatalog](ctx, c.RecipesFile)
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidInput, "failed to load recipes", err,
				map[string]any{"path": c.RecipesFile})
		}
		c.Recipes = cat.Recipes
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.Vocabulary) == 0 {
		c.Vocabulary = DefaultVocabulary()
	}
	if len(c.Recipes) == 0 {
		c.Recipes = DefaultRecipes()
	}

	d := receipt.DefaultConfig()
	if len(c.Receipt.MerchantKeywords) == 0 {
		c.Receipt.MerchantKeywords = d.MerchantKeywords
	}
	if len(c.Receipt.MerchantMarkers) == 0 {
		c.Receipt.MerchantMarkers = d.MerchantMarkers
	}
	if len(c.Receipt.SkipKeywords) == 0 {
		c.Receipt.SkipKeywords = d.SkipKeywords
	}
	if c.Receipt.Currency == "" {
		c.Receipt.Currency = d.Currency
	}

	if c.Normalizer.CacheTTLDays == 0 {
		c.Normalizer.CacheTTLDays = int(defaults.NormalizationCacheTTL / (24 * time.Hour))
	}
	if c.Normalizer.FuzzyThreshold == 0 {
		c.Normalizer.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if c.Normalizer.ClassifierTimeoutSeconds == 0 {
		c.Normalizer.ClassifierTimeoutSeconds = int(defaults.ClassifierTimeout / time.Second)
	}
	if c.Normalizer.BatchConcurrency == 0 {
		c.Normalizer.BatchConcurrency = defaults.BatchConcurrency
	}
	if c.RecipeCache.TTLMinutes == 0 {
		c.RecipeCache.TTLMinutes = defaults.RecipeCacheTTLMinutes
	}
	if c.Classifier.Backend == "" {
		c.Classifier.Backend = classifier.BackendNone
	}
	if c.Classifier.Ollama.Temperature == 0 {
		c.Classifier.Ollama.Temperature = 0.1
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvClassifier); v != "" {
		c.Classifier.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOllamaURL); v != "" {
		// Accept either the base URL or the full generate endpoint.
		c.Classifier.Ollama.URL = strings.TrimSuffix(strings.TrimRight(v, "/"), "/api/generate")
	}
	if c.Classifier.Vertex.ProjectID == "" {
		c.Classifier.Vertex.ProjectID = os.Getenv(EnvGoogleProject)
	}
	if c.Classifier.Vertex.Location == "" {
		c.Classifier.Vertex.Location = os.Getenv(EnvGoogleLocation)
	}
	if c.Classifier.Vertex.CredentialsFile == "" {
		c.Classifier.Vertex.CredentialsFile = os.Getenv(EnvGoogleCredsFile)
	}
}

// DefaultVocabulary returns the embedded vocabulary.
func DefaultVocabulary() []normalizer.Ingredient {
	var doc VocabularyDocument
	mustDecode(defaultVocabulary, &doc)
	return doc.Ingredients
}

// DefaultRecipes returns the embedded recipe catalog.
func DefaultRecipes() []matcher.Recipe {
	var cat RecipeCatalog
	mustDecode(defaultRecipes, &cat)
	return cat.Recipes
}

func mustDecode(data []byte, v any) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		panic(fmt.Sprintf("embedded configuration is invalid: %v", err))
	}
}

func fieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return out
}
