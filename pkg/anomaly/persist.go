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

package anomaly

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/features"
	"github.com/hostaudit/hostaudit/pkg/header"
	"github.com/hostaudit/hostaudit/pkg/logging"
	"github.com/hostaudit/hostaudit/pkg/serializer"
)

// Metadata keys of a saved model.
const (
	MetadataID           = "id"
	MetadataTrainingRows = "trainingRows"
)

// artifact is the persisted form of a fitted Model.
type artifact struct {
	header.Header `json:",inline" yaml:",inline"`

	Params Params          `json:"params" yaml:"params"`
	Schema features.Schema `json:"schema" yaml:"schema"`
	Offset float64         `json:"offset" yaml:"offset"`
	Forest *forest         `json:"forest,omitempty" yaml:"forest,omitempty"`
}

// Save writes the fitted model to path, creating parent directories and
// replacing any existing file. JSON unless the path ends in .yaml/.yml.
func (m *Model) Save(path string) error {
	if !m.Fitted() {
		return errors.New(errors.ErrCodeInvalidState, "cannot save a model that is not fitted")
	}
	if strings.TrimSpace(path) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "model path is empty")
	}

	a := artifact{
		Header: *header.New(
			header.WithKind(header.KindAnomalyModel),
			header.WithAPIVersion(header.APIVersionV1),
			header.WithCreated(m.created),
			header.WithVersion(m.version),
			header.WithMetadata(MetadataID, m.id),
			header.WithMetadata(MetadataTrainingRows, strconv.Itoa(m.trainingRows)),
		),
		Params: m.params,
		Schema: m.schema,
		Offset: m.offset,
		Forest: m.forest,
	}

	if err := serializer.ToFile(path, a); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to save model", err,
			map[string]any{"path": path})
	}

	logging.OrDiscard(m.logger).Info("baseline model saved",
		slog.String("path", path),
		slog.String("id", m.id))
	return nil
}

// Load reads a model saved by Save.
//
// Returns an ErrCodeNotFound error when the file does not exist, an
// ErrCodeParse error when it is malformed or not a model artifact, and an
// ErrCodeInvalidState error when it carries no fitted forest. Options set
// the logger and version of the returned model; saved hyperparameters win
// over any passed in.
func Load(path string, opts ...Option) (*Model, error) {
	ctx := map[string]any{"path": path}

	a, err := serializer.FromFile[artifact](path, serializer.WithStrict())
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "model not found", err, ctx)
		}
		return nil, errors.WrapWithContext(errors.ErrCodeParse, "failed to parse model", err, ctx)
	}

	if err := a.Check(header.KindAnomalyModel, header.APIVersionV1); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeParse, "not a model artifact", err, ctx)
	}
	if a.Forest == nil || len(a.Forest.Trees) == 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidState, "model artifact has no fitted forest", ctx)
	}
	if err := a.Forest.validate(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeParse, "corrupt model forest", err, ctx)
	}
	if n := len(a.Schema.Numeric()); n != a.Forest.Features {
		return nil, errors.NewWithContext(errors.ErrCodeParse, "model schema does not match forest width",
			map[string]any{"path": path, "numericColumns": n, "features": a.Forest.Features})
	}

	m := New(opts...)
	m.params = a.Params
	m.schema = a.Schema
	m.offset = a.Offset
	m.forest = a.Forest
	m.id = a.Metadata[MetadataID]
	m.created = a.Created()
	m.trainingRows, _ = strconv.Atoi(a.Metadata[MetadataTrainingRows])

	logging.OrDiscard(m.logger).Debug("baseline model loaded",
		slog.String("path", path),
		slog.String("id", m.id),
		slog.Int("trees", len(m.forest.Trees)))
	return m, nil
}
