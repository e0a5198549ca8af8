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

package features

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/logging"
	"github.com/hostaudit/hostaudit/pkg/snapshot"
)

// Option configures extraction.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for per-file progress.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// Extract loads each snapshot in order and returns one row per path.
// An empty path list yields an empty SnapshotSchema table.
// The first failing load aborts extraction; its error is returned unchanged
// in code with the offending path and position added as context.
func Extract(paths []string, opts ...Option) (*Table, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	log := logging.OrDiscard(s.logger)

	t := NewTable(SnapshotSchema)
	t.Rows = make([][]Value, 0, len(paths))
	for i, p := range paths {
		rec, err := snapshot.Load(p)
		if err != nil {
			return nil, errors.WrapWithContext(errors.CodeOf(err), "feature extraction failed", err,
				map[string]any{"path": p, "index": i})
		}
		t.Rows = append(t.Rows, Row(*rec))
		log.Debug("snapshot extracted", slog.String("path", p), slog.Int("row", i))
	}

	log.Info("features extracted",
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Schema)),
	)
	return t, nil
}

// ListSnapshots returns the sorted snapshot files (.json, .yaml, .yml) in dir.
// Subdirectories are not searched.
func ListSnapshots(dir string) ([]string, error) {
	ctx := map[string]any{"dir": dir}

	info, err := os.Stat(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "data directory not found", err, ctx)
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to stat data directory", err, ctx)
	}
	if !info.IsDir() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "data path is not a directory", ctx)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read data directory", err, ctx)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
