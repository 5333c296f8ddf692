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
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	pantryerrors "github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/serializer"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an ErrorResponse with the request's ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code pantryerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err to a status code and writes it. A StructuredError
// contributes its code, message and context; anything else is reported as an
// internal error with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string,
	extraDetails map[string]any) {

	code := pantryerrors.CodeOf(err)
	message := fallbackMessage
	details := map[string]any{}

	var se *pantryerrors.StructuredError
	if stderrors.As(err, &se) {
		if se.Message != "" {
			message = se.Message
		}
		for k, v := range se.Context {
			details[k] = v
		}
		if se.Cause != nil {
			details["error"] = se.Cause.Error()
		}
	} else if err != nil {
		details["error"] = err.Error()
	}
	for k, v := range extraDetails {
		details[k] = v
	}
	if len(details) == 0 {
		details = nil
	}

	status := HTTPStatusFromCode(code)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"error", err,
			"code", code,
			"requestID", RequestID(r.Context()),
			"path", r.URL.Path)
	}
	WriteError(w, r, status, code, message, IsRetryable(code), details)
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code pantryerrors.ErrorCode) int {
	switch code {
	case pantryerrors.ErrCodeInvalidRequest, pantryerrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case pantryerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case pantryerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case pantryerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case pantryerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case pantryerrors.ErrCodeUnavailable, pantryerrors.ErrCodeExternalUnavailable,
		pantryerrors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether a client may retry a request that failed with code.
func IsRetryable(code pantryerrors.ErrorCode) bool {
	switch code {
	case pantryerrors.ErrCodeTimeout, pantryerrors.ErrCodeRateLimitExceeded,
		pantryerrors.ErrCodeUnavailable, pantryerrors.ErrCodeExternalUnavailable,
		pantryerrors.ErrCodeCacheUnavailable:
		return true
	default:
		return false
	}
}
