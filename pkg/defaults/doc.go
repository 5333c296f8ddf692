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

// Package defaults centralizes timeouts, cache lifetimes and thresholds used
// across pantry packages.
//
// # Categories
//
//   - Handler timeouts: request-scoped deadlines for the HTTP API
//   - Server timeouts: http.Server read/write/idle/shutdown limits
//   - Classifier settings: external classification timeout and rate
//   - Cache lifetimes: normalization mapping TTL, recipe suggestion TTL
//   - Thresholds: fuzzy similarity cutoff, external default confidence
//
// # Usage
//
//	import "github.com/fridgeware/pantry/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ClassifierTimeout)
//	defer cancel()
package defaults
