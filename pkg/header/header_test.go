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

package header

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	h := New(WithKind(KindMatchReport), WithMetadata("source", "cli"))

	if h.Kind != KindMatchReport {
		t.Errorf("Kind = %q, want %q", h.Kind, KindMatchReport)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %q, want %q", h.APIVersion, APIVersion)
	}
	if h.Metadata["source"] != "cli" {
		t.Errorf("Metadata[source] = %q, want cli", h.Metadata["source"])
	}
}

func TestWithAPIVersion(t *testing.T) {
	h := New(WithAPIVersion("v0"))
	if h.APIVersion != "v0" {
		t.Errorf("APIVersion = %q, want v0", h.APIVersion)
	}
}

func TestInitAt(t *testing.T) {
	at := time.Date(2026, 3, 1, 11, 30, 0, 0, time.FixedZone("CET", 3600))

	var h Header
	h.InitAt(KindParsedReceipt, "v1.2.3", at)

	if h.Kind != KindParsedReceipt {
		t.Errorf("Kind = %q", h.Kind)
	}
	if got := h.Metadata["timestamp"]; got != "2026-03-01T10:30:00Z" {
		t.Errorf("timestamp = %q, want UTC RFC3339", got)
	}
	if got := h.Metadata["version"]; got != "v1.2.3" {
		t.Errorf("version = %q", got)
	}

	h.InitAt(KindSuggestions, "", at)
	if _, ok := h.Metadata["version"]; ok {
		t.Error("empty version should not be recorded")
	}
}

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindParsedReceipt, KindNormalizationReport, KindMatchReport, KindSuggestions, KindCachePruneResult} {
		if !k.IsValid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if Kind("Snapshot").IsValid() {
		t.Error("unknown kind reported valid")
	}
}
