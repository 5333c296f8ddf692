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

package suggestion

import (
	"context"
	"net/http"
	"regexp"

	"github.com/fridgeware/pantry/pkg/defaults"
	pantryerrors "github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/serializer"
	"github.com/fridgeware/pantry/pkg/server"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// HandleSuggest answers POST /v1/recipes/suggestions.
func (s *Service) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.SuggestionHandlerTimeout)
	defer cancel()

	var req Request
	if err := server.Bind(w, r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid suggestion request", nil)
		return
	}

	res, err := s.Suggest(ctx, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to suggest recipes", nil)
		return
	}

	if res.Cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	serializer.RespondJSON(w, http.StatusOK, res)
}

// HandleInvalidate answers DELETE /v1/recipes/suggestions/{hash}.
func (s *Service) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodDelete) {
		return
	}

	hash := r.PathValue("hash")
	if !hashPattern.MatchString(hash) {
		server.WriteError(w, r, http.StatusBadRequest, pantryerrors.ErrCodeInvalidInput,
			"Inventory hash must be 64 lowercase hex characters", false, map[string]any{"hash": hash})
		return
	}

	if err := s.Invalidate(r.Context(), hash); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to invalidate suggestions", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
