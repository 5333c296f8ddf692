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

// Package api exposes pantry over HTTP.
//
// It is a thin layer over pkg/server: it loads the configuration, builds
// the services in pkg/pantry and registers their handlers.
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST   /v1/receipts/parse                  - Parse OCR receipt text into a draft
//   - POST   /v1/ingredients/normalize           - Normalize one name or a batch
//   - POST   /v1/ingredients/verify              - Record a user-verified mapping
//   - GET    /v1/ingredients/mapping?name=       - Read a cached mapping
//   - POST   /v1/recipes/suggestions             - Rank recipes for an inventory
//   - DELETE /v1/recipes/suggestions/{hash}      - Drop cached suggestions
//
// System endpoints:
//   - GET /health  - Liveness
//   - GET /ready   - Readiness, including the database when one is configured
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl -X POST http://localhost:8080/v1/recipes/suggestions \
//	  -H "Content-Type: application/json" \
//	  -d '{"inventory": ["egg", "milk", "flour"], "limit": 5}'
//
// # Configuration
//
//   - PANTRY_CONFIG: configuration file or URL (built-in defaults when unset)
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/fridgeware/pantry/pkg/api.version=1.0.0'"
package api
