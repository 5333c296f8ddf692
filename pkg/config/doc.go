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

// Package config loads the pantry configuration document.
//
// A document is YAML or JSON, read from a local path or an http(s) URL,
// with sections for the vocabulary, the recipe catalog, receipt parsing,
// normalization, matching, caching, storage and the external classifier.
// Every section is optional: the embedded vocabulary and recipe catalog and
// the values in pkg/defaults fill anything left out, so the binaries run
// without a config file.
//
// Environment variables override the document:
//
//	PANTRY_DB_PATH            storage.path
//	PANTRY_CLASSIFIER         classifier.backend (none, ollama, vertex)
//	OLLAMA_URL                classifier.ollama.url
//	GOOGLE_PROJECT_ID         classifier.vertex.projectId, when unset
//	GOOGLE_LOCATION           classifier.vertex.location, when unset
//	GOOGLE_CREDENTIALS_FILE   classifier.vertex.credentialsFile, when unset
package config
