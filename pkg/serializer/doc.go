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

// Package serializer reads and writes pantry documents.
//
// Output formats:
//   - JSON: indented, for scripts and the HTTP API
//   - YAML: for configuration files and human review
//   - Table: FIELD/VALUE rows with flattened keys, for terminals
//
// Writing:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, receipt); err != nil {
//	    return err
//	}
//
// Reading, from a local path or an http(s) URL:
//
//	cfg, err := serializer.FromFile[config.Config](ctx, "pantry.yaml")
//
// HTTP handlers answer with RespondJSON, which encodes the body before
// writing headers so a failed encode never produces a partial response.
package serializer
