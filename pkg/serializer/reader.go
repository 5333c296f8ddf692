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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatFromPath picks a format from a file extension: .yaml and .yml are
// YAML, .table and .txt are table, anything else is JSON.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".table"), strings.HasSuffix(lower, ".txt"):
		return FormatTable
	default:
		return FormatJSON
	}
}

// FormatFromContentType maps a request Content-Type to a format.
// Unset or unrecognized types are JSON.
func FormatFromContentType(contentType string) Format {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatJSON
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Reader decodes JSON or YAML from an io.Reader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader returns a Reader over input. Table is write-only and rejected.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}
	r := &Reader{format: format, input: input}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// NewFileReader opens a local path, or downloads an http(s) URL, for decoding.
func NewFileReader(ctx context.Context, format Format, path string) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		data, err := NewHTTPReader().Read(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return &Reader{format: format, input: bytes.NewReader(data)}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Reader{format: format, input: f, closer: f}, nil
}

func readable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil || r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
	return nil
}

// Close releases the file handle, if any. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile loads a file or URL into a new T, picking the format from the extension.
func FromFile[T any](ctx context.Context, path string) (*T, error) {
	format := FormatFromPath(path)
	if format == FormatTable {
		format = FormatJSON
	}

	rd, err := NewFileReader(ctx, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if cerr := rd.Close(); cerr != nil {
			slog.Warn("failed to close reader", "error", cerr, "path", path)
		}
	}()

	var v T
	if err := rd.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", path, err)
	}

	slog.Debug("loaded file", "path", path, "format", format)
	return &v, nil
}
