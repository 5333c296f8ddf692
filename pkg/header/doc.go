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

// Package header defines the envelope shared by every pantry document.
//
// A Header names the document kind, the schema version and generation
// metadata, so files written by the CLI can be told apart and checked
// before they are read back:
//
//	kind: ParsedReceipt
//	apiVersion: pantry.fridgeware.dev/v1
//	metadata:
//	  timestamp: "2026-03-01T10:30:00Z"
//	  version: v0.4.0
//
// Usage:
//
//	var doc struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Receipt *receipt.ParsedReceipt `json:"receipt" yaml:"receipt"`
//	}
//	doc.Init(header.KindParsedReceipt, version)
package header
