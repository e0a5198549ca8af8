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
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Format
	}{
		{"json", "snapshot.json", FormatJSON},
		{"json upper", "SNAPSHOT.JSON", FormatJSON},
		{"yaml", "config.yaml", FormatYAML},
		{"yml", "config.yml", FormatYAML},
		{"table", "report.table", FormatTable},
		{"txt", "report.txt", FormatTable},
		{"no extension", "snapshot", FormatJSON},
		{"unknown", "snapshot.xml", FormatJSON},
		{"nested", "/var/lib/hostaudit/dataset/system_snapshot_0001.json", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.expected {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table", FormatTable, true},
		{"unknown", Format("xml"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader("{}"))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewReader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && r == nil {
				t.Error("expected reader")
			}
		})
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		strict  bool
		want    testConfig
		wantErr bool
	}{
		{
			name:   "json",
			format: FormatJSON,
			input:  `{"name": "test", "value": 42}`,
			want:   testConfig{Name: "test", Value: 42},
		},
		{
			name:   "json unknown field lenient",
			format: FormatJSON,
			input:  `{"name": "test", "value": 1, "extra": true}`,
			want:   testConfig{Name: "test", Value: 1},
		},
		{
			name:    "json unknown field strict",
			format:  FormatJSON,
			input:   `{"name": "test", "value": 1, "extra": true}`,
			strict:  true,
			wantErr: true,
		},
		{
			name:    "json truncated",
			format:  FormatJSON,
			input:   `{"name": "test", "val`,
			wantErr: true,
		},
		{
			name:    "json trailing data",
			format:  FormatJSON,
			input:   `{"name": "test"} {"name": "again"}`,
			wantErr: true,
		},
		{
			name:    "json empty",
			format:  FormatJSON,
			input:   ``,
			wantErr: true,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			input:  "name: test\nvalue: 42\n",
			want:   testConfig{Name: "test", Value: 42},
		},
		{
			name:    "yaml unknown field strict",
			format:  FormatYAML,
			input:   "name: test\nextra: 1\n",
			strict:  true,
			wantErr: true,
		},
		{
			name:    "yaml second document",
			format:  FormatYAML,
			input:   "name: a\n---\nname: b\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []ReaderOption
			if tt.strict {
				opts = append(opts, WithStrict())
			}
			r, err := NewReader(tt.format, strings.NewReader(tt.input), opts...)
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}

			var got testConfig
			err = r.Deserialize(&got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Deserialize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_DeserializeNilChecks(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&testConfig{}); err == nil {
		t.Error("expected error for nil reader")
	}

	r, err := NewReader(FormatJSON, nil)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if err := r.Deserialize(&testConfig{}); err == nil {
		t.Error("expected error for nil input")
	}
}

type trackingCloser struct {
	io.Reader
	closed int
}

func (c *trackingCloser) Close() error {
	c.closed++
	return nil
}

func TestReader_Close(t *testing.T) {
	src := &trackingCloser{Reader: strings.NewReader("{}")}
	r, err := NewReader(FormatJSON, src)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if src.closed != 1 {
		t.Errorf("closed %d times, want 1", src.closed)
	}

	var nilReader *Reader
	if err := nilReader.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
}

func TestNewFileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"name":"test","value":3}`), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := NewFileReader(FormatJSON, path)
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	defer r.Close()

	var got testConfig
	if err := r.Deserialize(&got); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if got.Value != 3 {
		t.Errorf("Value = %d, want 3", got.Value)
	}

	if _, err := NewFileReader(FormatTable, path); err == nil {
		t.Error("expected error for table format")
	}

	_, err = NewFileReader(FormatJSON, filepath.Join(dir, "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}

	// a missing file is reported as missing whatever the format
	_, err = NewFileReader(FormatTable, filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("table format: expected fs.ErrNotExist, got %v", err)
	}
}

func TestDocumentFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"snapshot.json", FormatJSON},
		{"snapshot.yaml", FormatYAML},
		{"snapshot.YML", FormatYAML},
		{"snapshot.txt", FormatJSON},
		{"snapshot.table", FormatJSON},
		{"snapshot", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DocumentFormatFromPath(tt.path); got != tt.expected {
				t.Errorf("DocumentFormatFromPath(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestFromFile_Success(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file    string
		content string
	}{
		{"a.json", `{"name": "test", "value": 9}`},
		{"a.yaml", "name: test\nvalue: 9\n"},
		{"a.yml", "name: test\nvalue: 9\n"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			got, err := FromFile[testConfig](path, WithStrict())
			if err != nil {
				t.Fatalf("FromFile failed: %v", err)
			}
			if got.Name != "test" || got.Value != 9 {
				t.Errorf("FromFile = %+v", got)
			}
		})
	}
}

func TestFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"missing.json", "missing.txt", "missing.table"} {
		_, err := FromFile[testConfig](filepath.Join(dir, name))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("%s: expected fs.ErrNotExist, got %v", name, err)
		}
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := FromFile[testConfig](bad)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Errorf("malformed file: unexpected error %v", err)
	}
}
