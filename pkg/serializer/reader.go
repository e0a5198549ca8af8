// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrTrailingData is returned when a document is followed by extra content.
var ErrTrailingData = errors.New("unexpected data after document")

// FormatFromPath determines the serialization format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table, .txt → FormatTable
//
// Returns FormatJSON as default for unknown extensions.
// Extension matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		return FormatJSON
	}
}

// DocumentFormatFromPath returns the format used for data files that must
// read back: YAML for .yaml/.yml, JSON for anything else.
func DocumentFormatFromPath(filePath string) Format {
	if FormatFromPath(filePath) == FormatYAML {
		return FormatYAML
	}
	return FormatJSON
}

// Reader handles deserialization of structured data from JSON or YAML.
//
// Resource Management:
//   - Close must be called to release resources when using NewFileReader
//   - Safe to call Close multiple times (idempotent)
//   - Close is a no-op for readers created with NewReader from non-closeable sources
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
	strict bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithStrict rejects fields that do not exist in the target type.
func WithStrict() ReaderOption {
	return func(r *Reader) {
		r.strict = true
	}
}

// NewReader creates a new Reader for deserializing data from an io.Reader source.
//
// Returns error if format is unknown or FormatTable (table format is write-only).
// If input implements io.Closer, it is closed by Reader.Close().
func NewReader(format Format, input io.Reader, opts ...ReaderOption) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	for _, opt := range opts {
		opt(r)
	}

	// Store closer if input implements it
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}

	return r, nil
}

// NewFileReader creates a new Reader that reads from a local file.
// The returned error wraps os.ErrNotExist when the file is missing.
func NewFileReader(format Format, filePath string, opts ...ReaderOption) (*Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := NewReader(format, file, opts...)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return r, nil
}

// Deserialize reads one document from the input source and unmarshals it into v.
// v must be a pointer. Trailing content after the document is an error.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}

	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		decoder := json.NewDecoder(r.input)
		if r.strict {
			decoder.DisallowUnknownFields()
		}
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to decode JSON: %w", ErrTrailingData)
		}
		return nil

	case FormatYAML:
		decoder := yaml.NewDecoder(r.input)
		decoder.KnownFields(r.strict)
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		var extra yaml.Node
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to decode YAML: %w", ErrTrailingData)
		}
		return nil

	case FormatTable:
		return fmt.Errorf("table format is not supported for deserialization")

	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases any resources held by the Reader.
// Safe to call on a nil Reader and safe to call multiple times.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}

	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil // Prevent double-close
		return err
	}
	return nil
}

// FromFile reads and deserializes a local file into a new T. The file is
// YAML when the path ends in .yaml/.yml and JSON otherwise. Errors from
// opening the file wrap the underlying *fs.PathError, so
// errors.Is(err, fs.ErrNotExist) works.
//
// Example:
//
//	rec, err := FromFile[snapshot.Record]("system_snapshot.json", WithStrict())
func FromFile[T any](path string, opts ...ReaderOption) (*T, error) {
	ser, err := NewFileReader(DocumentFormatFromPath(path), path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() { _ = ser.Close() }()

	var r T
	if err := ser.Deserialize(&r); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}
	return &r, nil
}
