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

// Package cli implements the pantry command-line interface.
//
// # Commands
//
// parse - Parse OCR receipt text:
//
//	pantry parse receipt.txt [--merchant REWE] [--normalize]
//
// Reads OCR text from a file, or from stdin when the argument is omitted
// or "-", and prints a receipt draft. With --normalize every item name is
// also mapped to a canonical ingredient.
//
// normalize - Map scanned names to canonical ingredients:
//
//	pantry normalize "BIO VOLLMILCH 3,5%" "Champignons weiß" [--external]
//
// verify - Record a user correction:
//
//	pantry verify "Hausmarke Käse" cheese
//
// match - Rank recipes for an inventory, or score one recipe:
//
//	pantry match --inventory egg,milk,flour [--min 50] [--limit 5]
//	pantry match --inventory egg,milk --recipe pancakes
//
// cache - Maintain the normalization and suggestion caches:
//
//	pantry cache prune
//	pantry cache forget "BIO VOLLMILCH"
//	pantry cache clear
//
// # Global Flags
//
//	--config, -c     Configuration file or URL (default: built-in)
//	--db             SQLite database path (default: in-memory caches)
//	--log-level      Logging level: debug, info, warn, error
//	--output, -o     Output file path (default: stdout)
//	--format, -t     Output format: yaml, json, table (default: yaml)
//
// # Environment Variables
//
//	PANTRY_CONFIG        Configuration file or URL
//	PANTRY_DB_PATH       SQLite database path
//	PANTRY_CLASSIFIER    Classifier backend: none, ollama, vertex
//	LOG_LEVEL            Logging level
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/fridgeware/pantry/pkg/cli.version=1.0.0'"
package cli
