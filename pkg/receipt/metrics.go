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

package receipt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantry_receipt_parse_duration_seconds",
			Help:    "Duration of receipt text parsing in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	itemsPerReceipt = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantry_receipt_items",
			Help:    "Number of items extracted per parsed receipt",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 40, 80},
		},
	)

	unrecognizedLinesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_receipt_unrecognized_lines_total",
			Help: "Total number of receipt lines that could not be classified",
		},
	)
)
