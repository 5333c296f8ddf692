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

// Package similarity implements the string normalization and edit-distance
// scoring shared by ingredient normalization and recipe matching.
//
// Both callers go through this package so the normalization rules and the
// distance routine exist exactly once:
//
//	score := similarity.Similarity("Champiñón", "champinon") // 1.0
//	key := similarity.Normalize("  Bio  EHL Champignon ")   // "bio ehl champignon"
package similarity
