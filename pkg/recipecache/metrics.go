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

package recipecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_recipe_cache_lookups_total",
			Help: "Recipe suggestion cache lookups by outcome (hit, miss, stale, error)",
		},
		[]string{"outcome"},
	)

	cacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_recipe_cache_writes_total",
			Help: "Recipe suggestion cache writes by outcome (ok, error)",
		},
		[]string{"outcome"},
	)

	cacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_recipe_cache_evictions_total",
			Help: "Total number of stale recipe suggestion batches evicted",
		},
	)
)
