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

package receipt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fridgeware/pantry/pkg/header"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleParse(t *testing.T) {
	p := NewParser(DefaultConfig(), WithVersion("v-test"))

	body := `{"text":"MILCH 1,29\nSUMME 1,29"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/receipts/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	p.HandleParse(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var d Draft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	_, err := uuid.Parse(d.ID)
	assert.NoError(t, err)
	assert.Equal(t, header.KindParsedReceipt, d.Kind)
	assert.Equal(t, "v-test", d.Metadata["version"])
	require.NotNil(t, d.Receipt)
	assert.Equal(t, []string{"MILCH"}, d.Receipt.Names())
	assert.Empty(t, d.Receipt.RawText)
	require.NotNil(t, d.Receipt.Total)
	assert.InDelta(t, 1.29, *d.Receipt.Total, 1e-9)
}

func TestHandleParse_YAML(t *testing.T) {
	p := NewParser(DefaultConfig())

	body := "text: |\n  BROT 2,49\nmerchant: Bäckerei\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/receipts/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()

	p.HandleParse(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var d Draft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	require.NotNil(t, d.Receipt.Merchant)
	assert.Equal(t, "Bäckerei", *d.Receipt.Merchant)
}

func TestHandleParse_Errors(t *testing.T) {
	p := NewParser(DefaultConfig())

	tests := []struct {
		name   string
		method string
		body   string
		status int
		code   string
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"missing text", http.MethodPost, `{}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"blank text", http.MethodPost, `{"text":"   "}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed", http.MethodPost, `{"text":`, http.StatusBadRequest, "INVALID_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/receipts/parse", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			p.HandleParse(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			var resp struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestNewDraft(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := &ParsedReceipt{Items: []Item{}, Currency: DefaultCurrency}

	d1 := NewDraft(r, "", at)
	d2 := NewDraft(r, "", at)

	assert.NotEqual(t, d1.ID, d2.ID)
	assert.Equal(t, "2026-01-02T03:04:05Z", d1.Metadata["timestamp"])
	assert.Equal(t, header.APIVersion, d1.APIVersion)
}
