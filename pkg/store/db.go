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

package store

import (
	"context"
	"database/sql"
	"embed"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/fridgeware/pantry/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.logger = l
		}
	}
}

// DB is a SQLite database holding the normalization and recipe caches.
type DB struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens or creates the database at path and applies pending migrations.
func Open(ctx context.Context, path string, opts ...Option) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "database path is required")
	}

	d := &DB{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to open database", err,
			map[string]any{"path": path})
	}
	// One connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to connect to database", err,
			map[string]any{"path": path})
	}
	d.db = db

	version, dirty, err := d.migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	d.logger.Debug("database ready", "path", path, "schemaVersion", version, "dirty", dirty)
	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Ping reports whether the database is reachable. It matches the server's
// readiness check signature through a closure.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, "database unreachable", err)
	}
	return nil
}

// Path returns the path the database was opened with.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) migrate() (uint, bool, error) {
	driver, err := sqlite.WithInstance(d.db, &sqlite.Config{})
	if err != nil {
		return 0, false, errors.Wrap(errors.ErrCodeInternal, "failed to create migration driver", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return 0, false, errors.Wrap(errors.ErrCodeInternal, "failed to read embedded migrations", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return 0, false, errors.Wrap(errors.ErrCodeInternal, "failed to create migrate instance", err)
	}

	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return 0, false, errors.Wrap(errors.ErrCodeInternal, "failed to run migrations", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, false, errors.Wrap(errors.ErrCodeInternal, "failed to read schema version", err)
	}
	return version, dirty, nil
}

func dsn(path string) string {
	pragmas := url.Values{}
	pragmas.Add("_pragma", "busy_timeout(5000)")
	if path != MemoryPath {
		pragmas.Add("_pragma", "journal_mode(WAL)")
	}
	return fmt.Sprintf("file:%s?%s", path, pragmas.Encode())
}
