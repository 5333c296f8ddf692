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
	stderrors "errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/fridgeware/pantry/pkg/defaults"
	pantryerrors "github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/serializer"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bind decodes a JSON or YAML request body into v and validates its
// `validate` struct tags. Failures are INVALID_REQUEST errors carrying the
// offending fields in their context.
func Bind(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return pantryerrors.New(pantryerrors.ErrCodeInvalidRequest, "Request body is required")
	}
	body := http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes)
	defer body.Close()

	rd, err := serializer.NewReader(serializer.FormatFromContentType(r.Header.Get("Content-Type")), body)
	if err != nil {
		return pantryerrors.Wrap(pantryerrors.ErrCodeInvalidRequest, "Unsupported content type", err)
	}
	if err := rd.Deserialize(v); err != nil {
		return pantryerrors.Wrap(pantryerrors.ErrCodeInvalidRequest, "Malformed request body", err)
	}

	return Validate(v)
}

// Validate checks v against its `validate` struct tags.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return pantryerrors.Wrap(pantryerrors.ErrCodeInvalidRequest, "Invalid request", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s:%s", fe.Namespace(), fe.Tag()))
	}
	return pantryerrors.NewWithContext(pantryerrors.ErrCodeInvalidRequest,
		"Request validation failed: "+strings.Join(fields, ", "),
		map[string]any{"fields": fields})
}

// RequireMethod writes a 405 and returns false unless r uses one of methods.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	if slices.Contains(methods, r.Method) {
		return true
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, r, http.StatusMethodNotAllowed, pantryerrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": methods,
		})
	return false
}
