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

// Package server is the HTTP runtime behind pantryd.
//
// Domain packages contribute handlers; the server owns routing, the
// middleware chain, health probes and metrics.
//
// # Middleware
//
// Every API handler runs inside, outermost first:
//
//   - Prometheus RED metrics keyed by route pattern
//   - API version negotiation (Accept: application/vnd.fridgeware.pantry.v1+json)
//   - request IDs (X-Request-Id, generated when absent or not a UUID)
//   - panic recovery
//   - token bucket rate limiting (golang.org/x/time/rate)
//   - debug request logging
//
// # Usage
//
//	s := server.New(
//	    server.WithName("pantryd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/receipts/parse": receiptHandler.HandleParse,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # System endpoints
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until started or when a readiness check fails
//	GET /metrics  Prometheus exposition
//
// # Errors
//
// Handlers report failures through WriteError or WriteErrorFromErr. Both emit
// an ErrorResponse:
//
//	{
//	  "code": "INVALID_INPUT",
//	  "message": "scanned name is empty",
//	  "requestId": "6f1c...",
//	  "timestamp": "2026-03-01T10:30:00Z",
//	  "retryable": false
//	}
//
// Error codes from pkg/errors map to HTTP status through HTTPStatusFromCode.
//
// # Configuration
//
// PORT overrides the listen port and SHUTDOWN_TIMEOUT_SECONDS the graceful
// shutdown window.
package server
