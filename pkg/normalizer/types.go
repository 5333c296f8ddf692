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
	"context"
	"time"
)

// Method identifies which cascade step produced a normalization.
type Method string

const (
	MethodExact    Method = "exact"
	MethodSynonym  Method = "synonym"
	MethodPartial  Method = "partial"
	MethodFuzzy    Method = "fuzzy"
	MethodExternal Method = "external"
	MethodNone     Method = "none"
)

// String returns the string representation of the Method.
func (m Method) String() string {
	return string(m)
}

// Confidence assigned by the fixed cascade steps.
const (
	ConfidenceExact   = 1.0
	ConfidenceSynonym = 0.95
	ConfidencePartial = 0.8
)

// Result is the outcome of normalizing one scanned name.
type Result struct {
	ScannedName    string  `json:"scannedName" yaml:"scannedName"`
	NormalizedName *string `json:"normalizedName" yaml:"normalizedName"`
	Category       string  `json:"category,omitempty" yaml:"category,omitempty"`
	Confidence     float64 `json:"confidence" yaml:"confidence"`
	Method         Method  `json:"method" yaml:"method"`
}

// Matched reports whether a canonical name was found.
func (r *Result) Matched() bool {
	return r != nil && r.NormalizedName != nil
}

// Name returns the canonical name or an empty string.
func (r *Result) Name() string {
	if !r.Matched() {
		return ""
	}
	return *r.NormalizedName
}

// Entry is a cached normalization.
type Entry struct {
	Result         Result    `json:"result" yaml:"result"`
	Timestamp      time.Time `json:"timestamp" yaml:"timestamp"`
	VerifiedByUser bool      `json:"verifiedByUser" yaml:"verifiedByUser"`
}

// Expired reports whether an automatic entry is older than ttl at now.
// Verified entries never expire.
func (e *Entry) Expired(now time.Time, ttl time.Duration) bool {
	if e.VerifiedByUser {
		return false
	}
	return now.Sub(e.Timestamp) >= ttl
}

// Store persists cache entries keyed by the normalized scanned name.
// Get returns (nil, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, e *Entry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// PruningStore is a Store that can drop automatic entries written at or
// before cutoff in one pass.
type PruningStore interface {
	Store
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// Classification is the answer of an external classifier.
// A nil NormalizedName means the classifier had no answer.
// A zero Confidence means the classifier did not report one.
type Classification struct {
	NormalizedName *string
	Confidence     float64
}

// Classifier is an external, possibly networked, normalization strategy.
type Classifier interface {
	Classify(ctx context.Context, name string) (*Classification, error)
}
