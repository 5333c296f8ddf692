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

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/fridgeware/pantry/pkg/config"
	"github.com/fridgeware/pantry/pkg/logging"
	"github.com/fridgeware/pantry/pkg/pantry"
	"github.com/fridgeware/pantry/pkg/server"
)

const (
	name           = "pantryd"
	versionDefault = "dev"

	// EnvConfig names the configuration file or URL.
	EnvConfig = "PANTRY_CONFIG"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := config.Load(ctx, os.Getenv(EnvConfig))
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return err
	}

	svc, err := pantry.New(ctx, cfg, pantry.WithVersion(version))
	if err != nil {
		slog.Error("failed to initialize services", "error", err)
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			slog.Warn("failed to close services", "error", cerr)
		}
	}()

	s := NewServer(svc)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewServer returns a server with svc's routes and a database readiness
// check when svc is persistent.
func NewServer(svc *pantry.Services) *server.Server {
	opts := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(svc)),
	}
	if svc.Persistent() {
		opts = append(opts, server.WithReadinessCheck("database", func(r *http.Request) error {
			return svc.Ready(r.Context())
		}))
	}
	return server.New(opts...)
}

// Routes maps API paths to svc's handlers. Handlers enforce their own methods.
func Routes(svc *pantry.Services) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/receipts/parse":             svc.Parser.HandleParse,
		"/v1/ingredients/normalize":      svc.Normalizer.HandleNormalize,
		"/v1/ingredients/verify":         svc.Normalizer.HandleVerify,
		"/v1/ingredients/mapping":        svc.Normalizer.HandleMapping,
		"/v1/recipes/suggestions":        svc.Suggestions.HandleSuggest,
		"/v1/recipes/suggestions/{hash}": svc.Suggestions.HandleInvalidate,
	}
}
