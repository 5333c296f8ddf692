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

package serializer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"vocab.yaml", FormatYAML},
		{"VOCAB.YML", FormatYAML},
		{"https://example.com/vocab.yaml?rev=3", FormatYAML},
		{"out.table", FormatTable},
		{"out.txt", FormatTable},
		{"vocab.json", FormatJSON},
		{"noext", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestFormatFromContentType(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromContentType("application/yaml"))
	assert.Equal(t, FormatYAML, FormatFromContentType("text/yaml; charset=utf-8"))
	assert.Equal(t, FormatJSON, FormatFromContentType("application/json"))
	assert.Equal(t, FormatJSON, FormatFromContentType(""))
}

func TestNewReader_RejectsTable(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	require.Error(t, err)

	_, err = NewReader(Format("toml"), strings.NewReader(""))
	require.Error(t, err)
}

func TestReader_Deserialize(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		r, err := NewReader(FormatJSON, strings.NewReader(`{"name":"milk","price":1.5}`))
		require.NoError(t, err)
		var it testItem
		require.NoError(t, r.Deserialize(&it))
		assert.Equal(t, "milk", it.Name)
		require.NotNil(t, it.Price)
		assert.InDelta(t, 1.5, *it.Price, 1e-9)
	})

	t.Run("yaml", func(t *testing.T) {
		r, err := NewReader(FormatYAML, strings.NewReader("name: bread\ntags: [bakery]\n"))
		require.NoError(t, err)
		var it testItem
		require.NoError(t, r.Deserialize(&it))
		assert.Equal(t, "bread", it.Name)
		assert.Equal(t, []string{"bakery"}, it.Tags)
	})

	t.Run("malformed", func(t *testing.T) {
		r, err := NewReader(FormatJSON, strings.NewReader(`{"name":`))
		require.NoError(t, err)
		var it testItem
		assert.Error(t, r.Deserialize(&it))
	})

	t.Run("nil reader", func(t *testing.T) {
		var r *Reader
		assert.Error(t, r.Deserialize(&testItem{}))
		assert.NoError(t, r.Close())
	})
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "item.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: cheese\n"), 0o600))

	it, err := FromFile[testItem](context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "cheese", it.Name)

	_, err = FromFile[testItem](context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFromFile_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/item.json" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, HTTPReaderUserAgent, r.UserAgent())
		w.Write([]byte(`{"name":"tomato"}`))
	}))
	defer srv.Close()

	it, err := FromFile[testItem](context.Background(), srv.URL+"/item.json")
	require.NoError(t, err)
	assert.Equal(t, "tomato", it.Name)

	_, err = FromFile[testItem](context.Background(), srv.URL+"/other.json")
	assert.Error(t, err)
}
