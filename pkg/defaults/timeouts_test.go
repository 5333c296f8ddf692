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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Handler timeouts
		{"ReceiptHandlerTimeout", ReceiptHandlerTimeout, 1 * time.Second, 30 * time.Second},
		{"NormalizeHandlerTimeout", NormalizeHandlerTimeout, 10 * time.Second, 120 * time.Second},
		{"SuggestionHandlerTimeout", SuggestionHandlerTimeout, 10 * time.Second, 60 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerReadHeaderTimeout", ServerReadHeaderTimeout, 1 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 120 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// Classifier
		{"ClassifierTimeout", ClassifierTimeout, 5 * time.Second, 60 * time.Second},

		// CLI
		{"CLICommandTimeout", CLICommandTimeout, 30 * time.Second, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s = %v, below minimum %v", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s = %v, above maximum %v", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestNormalizeHandlerOutlivesClassifier(t *testing.T) {
	if NormalizeHandlerTimeout <= ClassifierTimeout {
		t.Errorf("NormalizeHandlerTimeout (%v) should exceed ClassifierTimeout (%v)",
			NormalizeHandlerTimeout, ClassifierTimeout)
	}
}

func TestThresholds(t *testing.T) {
	if FuzzyThreshold <= 0 || FuzzyThreshold >= 1 {
		t.Errorf("FuzzyThreshold must be in (0,1), got %v", FuzzyThreshold)
	}
	if ExternalConfidence <= 0 || ExternalConfidence > 1 {
		t.Errorf("ExternalConfidence must be in (0,1], got %v", ExternalConfidence)
	}
	if NormalizationCacheTTL != 30*24*time.Hour {
		t.Errorf("NormalizationCacheTTL = %v, want 30 days", NormalizationCacheTTL)
	}
	if RecipeCacheTTLMinutes <= 0 {
		t.Errorf("RecipeCacheTTLMinutes must be positive, got %d", RecipeCacheTTLMinutes)
	}
}
