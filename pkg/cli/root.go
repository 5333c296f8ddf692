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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/fridgeware/pantry/pkg/config"
	"github.com/fridgeware/pantry/pkg/defaults"
	"github.com/fridgeware/pantry/pkg/logging"
	"github.com/fridgeware/pantry/pkg/pantry"
	"github.com/fridgeware/pantry/pkg/serializer"
)

const (
	name           = "pantry"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
)

// Execute runs the CLI with os.Args and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCommand returns the root command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Usage:                 "Receipt parsing, ingredient normalization and recipe suggestions",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file path or HTTP(S) URL",
				Sources: cli.EnvVars("PANTRY_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database path; overrides the configuration",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "warn",
			},
			outputFlag,
			formatFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			parseCmd(),
			normalizeCmd(),
			verifyCmd(),
			matchCmd(),
			cacheCmd(),
		},
	}
}

// parseOutputFormat reads and checks --format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// writeOutput serializes v to --output in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	f, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	var w serializer.Serializer = serializer.NewFileWriterOrStdout(f, cmd.String("output"))
	defer func() {
		if closer, ok := w.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close output", "error", err)
			}
		}
	}()

	return w.Serialize(ctx, v)
}

// withServices loads the configuration, builds the services and runs fn
// under the default command timeout.
func withServices(ctx context.Context, cmd *cli.Command, fn func(context.Context, *pantry.Services) error) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
	defer cancel()

	cfg, err := config.Load(ctx, cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if db := cmd.String("db"); db != "" {
		cfg.Storage.Path = db
	}

	svc, err := pantry.New(ctx, cfg, pantry.WithVersion(version))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			slog.Warn("failed to close services", "error", err)
		}
	}()

	return fn(ctx, svc)
}
