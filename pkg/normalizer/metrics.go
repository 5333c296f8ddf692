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

package normalizer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	normalizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_normalizations_total",
			Help: "Total number of ingredient normalizations by resolving method",
		},
		[]string{"method"},
	)

	normalizerCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_normalizer_cache_lookups_total",
			Help: "Normalization cache lookups by outcome (hit, miss, expired, error)",
		},
		[]string{"outcome"},
	)

	classifierCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_classifier_calls_total",
			Help: "External classifier calls by outcome (ok, empty, error)",
		},
		[]string{"outcome"},
	)
)
