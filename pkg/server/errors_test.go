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

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pantryerrors "github.com/fridgeware/pantry/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code pantryerrors.ErrorCode
		want int
	}{
		{pantryerrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{pantryerrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{pantryerrors.ErrCodeNotFound, http.StatusNotFound},
		{pantryerrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{pantryerrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{pantryerrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{pantryerrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{pantryerrors.ErrCodeExternalUnavailable, http.StatusServiceUnavailable},
		{pantryerrors.ErrCodeCacheUnavailable, http.StatusServiceUnavailable},
		{pantryerrors.ErrCodeInternal, http.StatusInternalServerError},
		{pantryerrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestWriteErrorFromErr(t *testing.T) {
	t.Run("structured", func(t *testing.T) {
		err := pantryerrors.NewWithContext(pantryerrors.ErrCodeInvalidInput, "scanned name is empty",
			map[string]any{"index": 2})
		wrapped := fmt.Errorf("batch: %w", err)

		rec := httptest.NewRecorder()
		WriteErrorFromErr(rec, httptest.NewRequest(http.MethodPost, "/", nil), wrapped, "fallback", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_INPUT", resp.Code)
		assert.Equal(t, "scanned name is empty", resp.Message)
		assert.EqualValues(t, 2, resp.Details["index"])
		assert.False(t, resp.Retryable)
	})

	t.Run("plain error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteErrorFromErr(rec, httptest.NewRequest(http.MethodPost, "/", nil),
			errors.New("disk full"), "Failed to store", map[string]any{"op": "put"})

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "INTERNAL", resp.Code)
		assert.Equal(t, "Failed to store", resp.Message)
		assert.Equal(t, "disk full", resp.Details["error"])
		assert.Equal(t, "put", resp.Details["op"])
	})

	t.Run("retryable", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteErrorFromErr(rec, httptest.NewRequest(http.MethodPost, "/", nil),
			pantryerrors.New(pantryerrors.ErrCodeTimeout, "classifier timed out"), "x", nil)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Retryable)
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})
}

type bindTarget struct {
	Text  string   `json:"text" yaml:"text" validate:"required"`
	Names []string `json:"names" yaml:"names" validate:"omitempty,max=3,dive,required"`
}

func TestBind(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     bool
	}{
		{"json", "application/json", `{"text":"MILCH 1,29"}`, false},
		{"yaml", "application/yaml", "text: MILCH 1,29\n", false},
		{"missing required", "application/json", `{"names":["a"]}`, true},
		{"too many names", "application/json", `{"text":"x","names":["a","b","c","d"]}`, true},
		{"empty element", "application/json", `{"text":"x","names":[""]}`, true},
		{"malformed", "application/json", `{"text":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			var v bindTarget
			err := Bind(httptest.NewRecorder(), req, &v)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, pantryerrors.ErrCodeInvalidRequest, pantryerrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "MILCH 1,29", v.Text)
		})
	}
}

func TestBind_NoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	err := Bind(httptest.NewRecorder(), req, &bindTarget{})
	assert.True(t, pantryerrors.IsCode(err, pantryerrors.ErrCodeInvalidRequest))
}

func TestRequireMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	ok := RequireMethod(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.MethodPost)
	assert.False(t, ok)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))

	rec = httptest.NewRecorder()
	assert.True(t, RequireMethod(rec, httptest.NewRequest(http.MethodPost, "/", nil), http.MethodPost))
}
