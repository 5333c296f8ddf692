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

package normalizer

import (
	"context"
	"net/http"
	"strings"

	"github.com/fridgeware/pantry/pkg/defaults"
	pantryerrors "github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/header"
	"github.com/fridgeware/pantry/pkg/serializer"
	"github.com/fridgeware/pantry/pkg/server"
)

// NormalizeRequest is the body of POST /v1/ingredients/normalize. Exactly
// one of Name and Names is set.
type NormalizeRequest struct {
	Name          string   `json:"name,omitempty" yaml:"name,omitempty" validate:"omitempty,max=200"`
	Names         []string `json:"names,omitempty" yaml:"names,omitempty" validate:"omitempty,max=500,dive,max=200"`
	AllowExternal bool     `json:"allowExternal,omitempty" yaml:"allowExternal,omitempty"`
}

// VerifyRequest is the body of POST /v1/ingredients/verify.
type VerifyRequest struct {
	ScannedName    string `json:"scannedName" yaml:"scannedName" validate:"required,max=200"`
	NormalizedName string `json:"normalizedName" yaml:"normalizedName" validate:"required,max=200"`
}

// Report wraps normalization results in a document header.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Results []*Result `json:"results" yaml:"results"`
}

// NewReport returns a report for results stamped with the normalizer's clock.
func (n *Normalizer) NewReport(results []*Result) *Report {
	rep := &Report{Results: results}
	rep.InitAt(header.KindNormalizationReport, n.version, n.now())
	return rep
}

// HandleNormalize answers POST /v1/ingredients/normalize.
func (n *Normalizer) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.NormalizeHandlerTimeout)
	defer cancel()

	var req NormalizeRequest
	if err := server.Bind(w, r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid normalization request", nil)
		return
	}

	names := req.Names
	switch {
	case req.Name != "" && len(names) > 0:
		server.WriteError(w, r, http.StatusBadRequest, pantryerrors.ErrCodeInvalidRequest,
			"Set either name or names, not both", false, nil)
		return
	case req.Name != "":
		names = []string{req.Name}
	case len(names) == 0:
		server.WriteError(w, r, http.StatusBadRequest, pantryerrors.ErrCodeInvalidRequest,
			"One of name or names is required", false, nil)
		return
	}

	results, err := n.NormalizeBatch(ctx, names, req.AllowExternal)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to normalize ingredients", nil)
		return
	}

	n.logger.Debug("normalization request served",
		"requestID", server.RequestID(r.Context()),
		"names", len(names),
		"allowExternal", req.AllowExternal)

	serializer.RespondJSON(w, http.StatusOK, n.NewReport(results))
}

// HandleVerify answers POST /v1/ingredients/verify.
func (n *Normalizer) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req VerifyRequest
	if err := server.Bind(w, r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid verification request", nil)
		return
	}

	res, err := n.Verify(r.Context(), req.ScannedName, req.NormalizedName)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to verify mapping", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, res)
}

// HandleMapping answers GET /v1/ingredients/mapping?name= with the cached
// mapping for name. It never runs the cascade.
func (n *Normalizer) HandleMapping(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		server.WriteError(w, r, http.StatusBadRequest, pantryerrors.ErrCodeInvalidRequest,
			"Query parameter name is required", false, nil)
		return
	}

	res, ok := n.Lookup(r.Context(), name)
	if !ok {
		server.WriteError(w, r, http.StatusNotFound, pantryerrors.ErrCodeNotFound,
			"No cached mapping", false, map[string]any{"name": name})
		return
	}
	serializer.RespondJSON(w, http.StatusOK, res)
}
