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

// Package pantry assembles the receipt parser, the ingredient normalizer
// and the suggestion service from a loaded configuration.
//
// Both binaries build their dependencies through New:
//
//	cfg, err := config.Load(ctx, path)
//	...
//	svc, err := pantry.New(ctx, cfg, pantry.WithVersion(version))
//	...
//	defer svc.Close()
//
// With Storage.Path set, normalization mappings and cached suggestions
// live in one SQLite database; otherwise both caches are kept in memory
// and lost on exit.
package pantry
