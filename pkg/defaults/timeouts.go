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

package defaults

import "time"

// Handler timeouts for HTTP request processing.
const (
	// ReceiptHandlerTimeout is the timeout for receipt parse requests.
	// Parsing is CPU-bound and fast; the bound mostly covers body reads.
	ReceiptHandlerTimeout = 10 * time.Second

	// NormalizeHandlerTimeout is the timeout for normalization requests.
	// Longer than ClassifierTimeout so a degraded result can still be written.
	NormalizeHandlerTimeout = 45 * time.Second

	// SuggestionHandlerTimeout is the timeout for recipe suggestion requests.
	SuggestionHandlerTimeout = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for remote configuration and classifier backends.
const (
	// HTTPClientTimeout is the total timeout for a single HTTP request.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing a TCP connection.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for the TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 20 * time.Second

	// HTTPIdleConnTimeout is how long idle connections stay in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive period for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Request limits.
const (
	// MaxRequestBodyBytes caps request bodies. Receipt OCR text is the largest payload.
	MaxRequestBodyBytes = 1 << 20
)

// External classifier settings.
const (
	// ClassifierTimeout bounds a single external classification call.
	ClassifierTimeout = 30 * time.Second

	// ClassifierRateLimit is the sustained request rate (per second) sent to a classifier backend.
	ClassifierRateLimit = 5

	// ClassifierVocabularyHint is how many canonical names are listed in a classifier prompt.
	ClassifierVocabularyHint = 100
)

// Cache lifetimes.
const (
	// NormalizationCacheTTL is how long an automatic ingredient mapping stays valid.
	// User-verified mappings never expire.
	NormalizationCacheTTL = 30 * 24 * time.Hour

	// RecipeCacheTTLMinutes is the default lifetime of a cached suggestion batch.
	RecipeCacheTTLMinutes = 60
)

// Normalization and matching thresholds.
const (
	// FuzzyThreshold is the similarity a fuzzy match must exceed.
	FuzzyThreshold = 0.75

	// ExternalConfidence is assigned to external results that do not report a confidence.
	ExternalConfidence = 0.85

	// BatchConcurrency caps parallel workers in batch normalization.
	BatchConcurrency = 8

	// MaxBatchSize caps the number of names accepted by one batch request.
	MaxBatchSize = 500
)

// CLI timeouts for command-line operations.
const (
	// CLICommandTimeout is the default timeout for a single CLI command.
	CLICommandTimeout = 2 * time.Minute
)
