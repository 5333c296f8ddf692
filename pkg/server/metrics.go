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

package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheHeader is set by handlers that answer from a cache, to HIT or MISS.
const cacheHeader = "X-Cache"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_http_requests_total",
			Help: "API requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_http_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"route", "method"},
	)

	httpResponseBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_http_response_bytes",
			Help:    "API response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 7),
		},
		[]string{"route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pantry_http_requests_in_flight",
			Help: "API requests currently being served",
		},
	)

	httpCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_http_cache_results_total",
			Help: "Cached API responses by route and result (hit or miss)",
		},
		[]string{"route", "result"},
	)

	rateLimitRejects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_rate_limit_rejects_total",
			Help: "API requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	bodyRejects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_http_body_rejects_total",
			Help: "API requests rejected for an oversized body",
		},
		[]string{"route"},
	)

	panicRecoveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_panic_recoveries_total",
			Help: "Handler panics recovered, by route",
		},
		[]string{"route"},
	)
)

// metricsMiddleware records request counts, latency and response size per
// route pattern, so path parameters such as inventory hashes stay out of the
// label set. It also counts cache hits for handlers that set X-Cache.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		route := routeLabel(r)
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.Status())).Inc()
		httpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		httpResponseBytes.WithLabelValues(route).Observe(float64(rw.Bytes()))
		if c := rw.Header().Get(cacheHeader); c != "" {
			httpCacheResults.WithLabelValues(route, strings.ToLower(c)).Inc()
		}
	}
}
