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

// Package classifier provides the external normalization strategies used
// after the local cascade fails: a local Ollama server or a Gemini model on
// Vertex AI.
//
// Both backends send the same prompt listing the vocabulary's canonical
// names and accept an answer only when it resolves to a vocabulary entry by
// canonical name or synonym. Anything else, including "unknown", is returned
// as a Classification with no name. Requests are rate limited per backend.
//
//	b, err := classifier.New(ctx, cfg.Classifier, vocab)
//	if err != nil {
//	    return err
//	}
//	if b != nil {
//	    defer b.Close()
//	    opts = append(opts, normalizer.WithClassifier(b))
//	}
package classifier
