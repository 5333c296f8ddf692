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

package receipt

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fridgeware/pantry/pkg/defaults"
	pantryerrors "github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/header"
	"github.com/fridgeware/pantry/pkg/serializer"
	"github.com/fridgeware/pantry/pkg/server"
	"github.com/google/uuid"
)

// ParseRequest is the body of POST /v1/receipts/parse.
type ParseRequest struct {
	Text     string `json:"text" yaml:"text" validate:"required"`
	Merchant string `json:"merchant,omitempty" yaml:"merchant,omitempty" validate:"omitempty,max=200"`
}

// Draft is a parsed receipt awaiting user confirmation. The ID lets a
// client refer back to it when confirming items into the pantry.
type Draft struct {
	header.Header `json:",inline" yaml:",inline"`

	ID      string         `json:"id" yaml:"id"`
	Receipt *ParsedReceipt `json:"receipt" yaml:"receipt"`
}

// NewDraft wraps r with a fresh ID and header.
func NewDraft(r *ParsedReceipt, version string, at time.Time) *Draft {
	d := &Draft{ID: uuid.NewString(), Receipt: r}
	d.InitAt(header.KindParsedReceipt, version, at)
	return d
}

// HandleParse parses OCR text posted as JSON or YAML and answers with a Draft.
// Raw text is not echoed back.
func (p *Parser) HandleParse(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReceiptHandlerTimeout)
	defer cancel()

	var req ParseRequest
	if err := server.Bind(w, r.WithContext(ctx), &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid receipt request", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		server.WriteError(w, r, http.StatusBadRequest, pantryerrors.ErrCodeInvalidInput,
			"Receipt text is blank", false, nil)
		return
	}

	parsed := p.Parse(req.Text, req.Merchant)
	parsed.RawText = ""

	p.logger.Debug("receipt draft created",
		"requestID", server.RequestID(r.Context()),
		"items", len(parsed.Items))

	serializer.RespondJSON(w, http.StatusOK, NewDraft(parsed, p.version, time.Now()))
}
