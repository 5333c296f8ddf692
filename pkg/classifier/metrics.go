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

package classifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	classifierRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_classifier_backend_requests_total",
			Help: "Requests sent to classifier backends by outcome (ok, unknown, error, throttled)",
		},
		[]string{"backend", "outcome"},
	)

	classifierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_classifier_backend_duration_seconds",
			Help:    "Classifier backend request latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend"},
	)
)
