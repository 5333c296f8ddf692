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
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/normalizer"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDBPath, EnvClassifier, EnvOllamaURL, EnvGoogleProject, EnvGoogleLocation, EnvGoogleCredsFile} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	assert.NotEmpty(t, c.Vocabulary)
	assert.NotEmpty(t, c.Recipes)
	assert.Contains(t, c.Receipt.MerchantKeywords, "rewe")
	assert.Equal(t, "EUR", c.Receipt.Currency)
	assert.Equal(t, 30, c.Normalizer.CacheTTLDays)
	assert.InDelta(t, 0.75, c.Normalizer.FuzzyThreshold, 1e-9)
	assert.Equal(t, 60, c.RecipeCache.TTLMinutes)
	assert.Equal(t, "none", c.Classifier.Backend)
	assert.Empty(t, c.Storage.Path)
}

func TestDefaultVocabulary(t *testing.T) {
	vocab := Default().NewVocabulary()
	assert.Equal(t, len(DefaultVocabulary()), vocab.Len())

	n := normalizer.New(vocab)
	res, err := n.Normalize(context.Background(), "Bio EHL Champignon", false)
	require.NoError(t, err)
	assert.Equal(t, "mushroom", res.Name())

	res, err = n.Normalize(context.Background(), "Milch", false)
	require.NoError(t, err)
	assert.Equal(t, normalizer.MethodSynonym, res.Method)
	assert.Equal(t, "milk", res.Name())
}

func TestDefaultRecipesAreValid(t *testing.T) {
	ids := map[string]bool{}
	for _, r := range DefaultRecipes() {
		assert.False(t, ids[r.ID], "duplicate recipe id %s", r.ID)
		ids[r.ID] = true
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Ingredients)
		if len(r.IngredientsNormalized) > 0 {
			assert.Len(t, r.IngredientsNormalized, len(r.Ingredients), r.ID)
		}
		assert.LessOrEqual(t, r.MinIngredients, len(r.Ingredients), r.ID)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("empty path", func(t *testing.T) {
		clearEnv(t)
		c, err := Load(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("yaml overrides", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "pantry.yaml", `
vocabulary:
  - name: oat milk
    synonyms: [haferdrink]
    category: drinks
recipes:
  - id: porridge
    name: Porridge
    ingredients: [oats, oat milk]
    minIngredients: 1
receipt:
  merchantKeywords: [konsum]
  currency: CHF
normalizer:
  fuzzyThreshold: 0.8
  allowExternal: true
matcher:
  singularize: true
  limit: 5
recipeCache:
  ttlMinutes: 15
storage:
  path: /tmp/pantry.db
classifier:
  backend: ollama
  ollama:
    url: http://ollama:11434
    model: mistral
`)
		c, err := Load(ctx, path)
		require.NoError(t, err)

		require.Len(t, c.Vocabulary, 1)
		assert.Equal(t, "oat milk", c.Vocabulary[0].Name)
		require.Len(t, c.Recipes, 1)
		assert.Equal(t, []string{"konsum"}, c.Receipt.MerchantKeywords)
		assert.NotEmpty(t, c.Receipt.SkipKeywords, "unset lists keep defaults")
		assert.Equal(t, "CHF", c.Receipt.Currency)
		assert.InDelta(t, 0.8, c.Normalizer.FuzzyThreshold, 1e-9)
		assert.True(t, c.Normalizer.AllowExternal)
		assert.Equal(t, 30, c.Normalizer.CacheTTLDays)
		assert.True(t, c.Matcher.Singularize)
		assert.Equal(t, 5, c.RankOptions().Limit)
		assert.Equal(t, 15, c.RecipeCache.TTLMinutes)
		assert.Equal(t, "/tmp/pantry.db", c.Storage.Path)
		assert.Equal(t, "ollama", c.Classifier.Backend)
		assert.Equal(t, "mistral", c.Classifier.Ollama.Model)
	})

	t.Run("json", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "pantry.json", `{"matcher": {"minMatchPercentage": 40}}`)
		c, err := Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 40, c.RankOptions().MinMatchPercentage)
		assert.NotEmpty(t, c.Vocabulary)
	})

	t.Run("referenced files", func(t *testing.T) {
		clearEnv(t)
		vocab := writeFile(t, "vocab.yaml", "ingredients:\n  - name: kale\n    synonyms: [grünkohl]\n")
		recipes := writeFile(t, "recipes.json", `{"recipes": [{"id": "kale-chips", "name": "Kale Chips", "ingredients": ["kale", "olive oil"], "minIngredients": 1}]}`)
		path := writeFile(t, "pantry.yaml", "vocabularyFile: "+vocab+"\nrecipesFile: "+recipes+"\n")

		c, err := Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, c.Vocabulary, 1)
		assert.Equal(t, "kale", c.Vocabulary[0].Name)
		require.Len(t, c.Recipes, 1)
		assert.Equal(t, "kale-chips", c.Recipes[0].ID)
	})

	t.Run("remote vocabulary", func(t *testing.T) {
		clearEnv(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ingredients:\n  - name: leek\n    synonyms: [lauch]\n"))
		}))
		defer srv.Close()

		path := writeFile(t, "pantry.yaml", "vocabularyFile: "+srv.URL+"/vocabulary.yaml\n")
		c, err := Load(ctx, path)
		require.NoError(t, err)
		require.Len(t, c.Vocabulary, 1)
		assert.Equal(t, "leek", c.Vocabulary[0].Name)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvDBPath, "/data/pantry.db")
		t.Setenv(EnvClassifier, "Vertex")
		t.Setenv(EnvOllamaURL, "http://gpu:11434/api/generate")
		t.Setenv(EnvGoogleProject, "fridge-prod")
		t.Setenv(EnvGoogleLocation, "europe-west1")
		t.Setenv(EnvGoogleCredsFile, "/secrets/sa.json")

		c, err := Load(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "/data/pantry.db", c.Storage.Path)
		assert.Equal(t, "vertex", c.Classifier.Backend)
		assert.Equal(t, "http://gpu:11434", c.Classifier.Ollama.URL)
		assert.Equal(t, "fridge-prod", c.Classifier.Vertex.ProjectID)
		assert.Equal(t, "europe-west1", c.Classifier.Vertex.Location)
		assert.Equal(t, "/secrets/sa.json", c.Classifier.Vertex.CredentialsFile)
	})

	t.Run("file values win over google env", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvGoogleProject, "from-env")
		path := writeFile(t, "pantry.yaml", "classifier:\n  vertex:\n    projectId: from-file\n")
		c, err := Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "from-file", c.Classifier.Vertex.ProjectID)
	})
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "missing file", file: ""},
		{name: "malformed yaml", file: "bad.yaml", content: "vocabulary: [\n"},
		{name: "threshold out of range", file: "c.yaml", content: "normalizer:\n  fuzzyThreshold: 1.5\n"},
		{name: "unknown backend", file: "c.yaml", content: "classifier:\n  backend: openai\n"},
		{name: "recipe without id", file: "c.yaml", content: "recipes:\n  - name: Soup\n    ingredients: [water]\n"},
		{name: "percentage out of range", file: "c.yaml", content: "matcher:\n  minMatchPercentage: 101\n"},
		{name: "missing vocabulary file", file: "c.yaml", content: "vocabularyFile: /nonexistent/vocab.yaml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.file != "" {
				path = writeFile(t, tt.file, tt.content)
			}
			_, err := Load(ctx, path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput), err.Error())
		})
	}
}

func TestNormalizerOptions(t *testing.T) {
	ctx := context.Background()
	c := Default()

	res, err := normalizer.New(c.NewVocabulary(), c.NormalizerOptions()...).Normalize(ctx, "tomatto", false)
	require.NoError(t, err)
	assert.Equal(t, normalizer.MethodFuzzy, res.Method)
	assert.Equal(t, "tomato", res.Name())

	c.Normalizer.FuzzyThreshold = 0.9
	res, err = normalizer.New(c.NewVocabulary(), c.NormalizerOptions()...).Normalize(ctx, "tomatto", false)
	require.NoError(t, err)
	assert.Equal(t, normalizer.MethodNone, res.Method)

	m := c.NewMatcher()
	assert.Equal(t, 100, m.Match([]string{"eggs"}, []string{"egg"}).MatchPercentage)
}
