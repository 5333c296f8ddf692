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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	pantryerrors "github.com/fridgeware/pantry/pkg/errors"
	"github.com/google/uuid"
)

// withMiddleware wraps an API handler. Outermost first: metrics, request ID,
// access log, panic recovery, version negotiation, rate limit, body limit.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.metricsMiddleware(
		s.requestIDMiddleware(
			s.loggingMiddleware(
				s.panicRecoveryMiddleware(
					s.versionMiddleware(
						s.rateLimitMiddleware(
							s.bodyLimitMiddleware(handler),
						),
					),
				),
			),
		),
	)
}

func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := negotiateAPIVersion(r)
		SetAPIVersionHeader(w, version)
		ctx := context.WithValue(r.Context(), contextKeyAPIVersion, version)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requestIDMiddleware keeps a client supplied X-Request-Id when it is a UUID
// and generates one otherwise.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// rateLimitMiddleware applies one shared token bucket to all API routes.
// System endpoints are registered outside the chain and never throttled.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := strconv.Itoa(int(s.config.RateLimit))
		if !s.rateLimiter.Allow() {
			rateLimitRejects.WithLabelValues(routeLabel(r)).Inc()
			w.Header().Set("Retry-After", "1")
			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", "0")
			WriteError(w, r, http.StatusTooManyRequests, pantryerrors.ErrCodeRateLimitExceeded,
				"Too many requests, retry shortly", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}

		w.Header().Set("X-RateLimit-Limit", limit)
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, int(s.rateLimiter.Tokens()))))
		next.ServeHTTP(w, r)
	}
}

// bodyLimitMiddleware rejects declared oversized bodies with 413 before any
// decoding and caps undeclared ones at the same size.
func (s *Server) bodyLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := s.config.MaxBodyBytes
		if limit <= 0 || r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > limit {
			bodyRejects.WithLabelValues(routeLabel(r)).Inc()
			WriteError(w, r, http.StatusRequestEntityTooLarge, pantryerrors.ErrCodeInvalidRequest,
				"Request body too large", false, map[string]any{
					"limit":         limit,
					"contentLength": r.ContentLength,
				})
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	}
}

func (s *Server) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				panicRecoveries.WithLabelValues(routeLabel(r)).Inc()
				slog.Error("handler panicked",
					"error", fmt.Sprintf("%v", rec),
					"requestID", RequestID(r.Context()),
					"route", routeLabel(r),
					"method", r.Method,
				)
				WriteError(w, r, http.StatusInternalServerError, pantryerrors.ErrCodeInternal,
					"Internal server error", true, nil)
			}
		}()
		next.ServeHTTP(w, r)
	}
}

// loggingMiddleware writes one access line per request. Server errors log at
// warn, everything else at debug.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		level := slog.LevelDebug
		if rw.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		attrs := []any{
			"requestID", RequestID(r.Context()),
			"method", r.Method,
			"route", routeLabel(r),
			"status", rw.Status(),
			"bytes", rw.Bytes(),
			"duration", time.Since(start).String(),
		}
		if c := rw.Header().Get(cacheHeader); c != "" {
			attrs = append(attrs, "cache", c)
		}
		slog.Log(r.Context(), level, "request served", attrs...)
	}
}

// routeLabel returns the matched ServeMux pattern, falling back to the path
// for requests that never went through the mux.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return r.URL.Path
}
