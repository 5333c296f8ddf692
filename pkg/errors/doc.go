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

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeExternalUnavailable,
//	    "classifier request failed",
//	    ctx.Err(),
//	    map[string]any{
//	        "classifier": "ollama",
//	        "scannedName": name,
//	    },
//	)
//
// Callers branch on the code rather than on sentinel values:
//
//	if errors.IsCode(err, errors.ErrCodeInvalidInput) {
//	    // reject the request
//	}
package errors
