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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "scanned name is empty")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidInput, err.Code)
	}
	if err.Message != "scanned name is empty" {
		t.Errorf("expected message 'scanned name is empty', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Wrap(ErrCodeCacheUnavailable, "read mapping", cause)

	if err.Code != ErrCodeCacheUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeCacheUnavailable, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("deadline exceeded")
	ctx := map[string]any{
		"classifier":  "ollama",
		"scannedName": "bio ehl champignon",
	}

	err := WrapWithContext(ErrCodeExternalUnavailable, "classification failed", cause, ctx)

	if err.Code != ErrCodeExternalUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeExternalUnavailable, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["classifier"] != "ollama" {
		t.Errorf("expected classifier to be ollama")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "mapping not found"),
			expected: "[NOT_FOUND] mapping not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"structured", New(ErrCodeTimeout, "slow"), ErrCodeTimeout},
		{"wrapped by fmt", fmt.Errorf("outer: %w", New(ErrCodeInvalidInput, "empty")), ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("normalize: %w", New(ErrCodeInvalidInput, "empty"))
	if !IsCode(err, ErrCodeInvalidInput) {
		t.Errorf("expected IsCode to match INVALID_INPUT")
	}
	if IsCode(err, ErrCodeNotFound) {
		t.Errorf("expected IsCode not to match NOT_FOUND")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Errorf("nil error must not match any code")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeInvalidInput,
		ErrCodeUnavailable,
		ErrCodeExternalUnavailable,
		ErrCodeCacheUnavailable,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
