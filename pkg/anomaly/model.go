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
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/hostaudit/hostaudit/pkg/defaults"
	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/features"
	"github.com/hostaudit/hostaudit/pkg/logging"
	"github.com/hostaudit/hostaudit/pkg/metrics"
)

// Label is the binary verdict for one row.
type Label string

const (
	LabelNormal  Label = "NORMAL"
	LabelAnomaly Label = "ANOMALY"
)

// String implements fmt.Stringer.
func (l Label) String() string {
	return string(l)
}

// Params are the forest hyperparameters.
type Params struct {
	Trees         int     `json:"trees" yaml:"trees"`
	Contamination float64 `json:"contamination" yaml:"contamination"`
	Seed          int64   `json:"seed" yaml:"seed"`
	MaxSamples    int     `json:"maxSamples" yaml:"maxSamples"`
}

// DefaultParams returns 100 trees, 5% contamination, seed 42 and at most
// 256 samples per tree.
func DefaultParams() Params {
	return Params{
		Trees:         defaults.ModelNumTrees,
		Contamination: defaults.ModelContamination,
		Seed:          defaults.ModelSeed,
		MaxSamples:    defaults.ModelMaxSamples,
	}
}

func (p Params) validate() error {
	switch {
	case p.Trees < 1:
		return fmt.Errorf("trees must be positive, got %d", p.Trees)
	case p.MaxSamples < 1:
		return fmt.Errorf("max samples must be positive, got %d", p.MaxSamples)
	case !(p.Contamination > 0 && p.Contamination <= 0.5):
		return fmt.Errorf("contamination must be in (0, 0.5], got %g", p.Contamination)
	}
	return nil
}

// Model is an isolation forest baseline. It starts unfitted; Fit moves it
// to the fitted state. A Model is not safe for concurrent use.
type Model struct {
	params  Params
	logger  *slog.Logger
	version string

	forest       *forest
	schema       features.Schema
	offset       float64
	id           string
	created      time.Time
	trainingRows int
}

// Option configures a Model.
type Option func(*Model)

// WithParams replaces all hyperparameters.
func WithParams(p Params) Option {
	return func(m *Model) {
		m.params = p
	}
}

// WithTrees sets the ensemble size.
func WithTrees(n int) Option {
	return func(m *Model) {
		m.params.Trees = n
	}
}

// WithContamination sets the expected outlier fraction of the training set.
func WithContamination(c float64) Option {
	return func(m *Model) {
		m.params.Contamination = c
	}
}

// WithSeed sets the random seed used by Fit.
func WithSeed(seed int64) Option {
	return func(m *Model) {
		m.params.Seed = seed
	}
}

// WithMaxSamples caps the per-tree subsample size.
func WithMaxSamples(n int) Option {
	return func(m *Model) {
		m.params.MaxSamples = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithVersion records the tool version in saved artifacts.
func WithVersion(v string) Option {
	return func(m *Model) {
		m.version = v
	}
}

// New returns an unfitted model with DefaultParams.
func New(opts ...Option) *Model {
	m := &Model{params: DefaultParams()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fitted reports whether the model can score.
func (m *Model) Fitted() bool {
	return m.forest != nil
}

// Params returns the hyperparameters.
func (m *Model) Params() Params { return m.params }

// Schema returns the schema the model was fitted on; nil before Fit.
func (m *Model) Schema() features.Schema { return m.schema }

// Offset returns the decision threshold on ScoreSamples output.
func (m *Model) Offset() float64 { return m.offset }

// ID returns the artifact id assigned by Fit.
func (m *Model) ID() string { return m.id }

// Created returns when the model was fitted.
func (m *Model) Created() time.Time { return m.created }

// TrainingRows returns the number of rows the model was fitted on.
func (m *Model) TrainingRows() int { return m.trainingRows }

// Fit builds the forest on the numeric columns of t and derives the
// decision offset from the training scores. Fitting again replaces the
// previous forest. Returns m so calls can be chained.
func (m *Model) Fit(t *features.Table) (*Model, error) {
	if err := m.params.validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid model parameters", err)
	}
	if t.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot fit on an empty table")
	}
	if len(t.Schema.Numeric()) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table has no numeric columns")
	}

	x := t.Matrix()
	if err := checkFinite(x); err != nil {
		return nil, err
	}

	log := logging.OrDiscard(m.logger)
	start := time.Now()

	rng := rand.New(rand.NewSource(m.params.Seed)) //nolint:gosec // reproducible forests, not security
	f := growForest(x, m.params.Trees, m.params.MaxSamples, rng)

	scores := make([]float64, len(x))
	for i, row := range x {
		scores[i] = f.score(row)
	}
	slices.Sort(scores)

	m.forest = f
	m.schema = append(features.Schema(nil), t.Schema...)
	m.offset = percentile(scores, 100*m.params.Contamination)
	m.id = uuid.NewString()
	m.created = time.Now().UTC()
	m.trainingRows = len(x)

	metrics.ObserveFit(time.Since(start), len(x))
	log.Info("baseline model fitted",
		slog.String("id", m.id),
		slog.Int("rows", len(x)),
		slog.Int("features", f.Features),
		slog.Int("trees", len(f.Trees)),
		slog.Int("sampleSize", f.SampleSize),
		slog.Float64("offset", m.offset),
		slog.Duration("duration", time.Since(start)))

	return m, nil
}

// ScoreSamples returns one score per row, in row order. Lower scores are
// more anomalous.
func (m *Model) ScoreSamples(t *features.Table) ([]float64, error) {
	x, err := m.inputs(t)
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(x))
	for i, row := range x {
		scores[i] = m.forest.score(row)
	}
	return scores, nil
}

// DecisionFunction returns ScoreSamples minus the offset; negative values
// are anomalies.
func (m *Model) DecisionFunction(t *features.Table) ([]float64, error) {
	scores, err := m.ScoreSamples(t)
	if err != nil {
		return nil, err
	}
	for i := range scores {
		scores[i] -= m.offset
	}
	return scores, nil
}

// PredictLabels labels each row LabelAnomaly when its decision value is
// negative and LabelNormal otherwise.
func (m *Model) PredictLabels(t *features.Table) ([]Label, error) {
	decisions, err := m.DecisionFunction(t)
	if err != nil {
		return nil, err
	}
	labels := make([]Label, len(decisions))
	for i, d := range decisions {
		labels[i] = labelFor(d)
	}
	return labels, nil
}

// Result is the evaluation of one row.
type Result struct {
	Score    float64 `json:"score" yaml:"score"`
	Decision float64 `json:"decision" yaml:"decision"`
	Label    Label   `json:"label" yaml:"label"`
}

// Evaluate scores and labels every row in one pass and records metrics.
func (m *Model) Evaluate(t *features.Table) ([]Result, error) {
	scores, err := m.ScoreSamples(t)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(scores))
	anomalies := 0
	for i, s := range scores {
		d := s - m.offset
		results[i] = Result{Score: s, Decision: d, Label: labelFor(d)}
		if results[i].Label == LabelAnomaly {
			anomalies++
		}
	}

	metrics.ObserveScores(len(results), anomalies)
	logging.OrDiscard(m.logger).Debug("samples evaluated",
		slog.String("model", m.id),
		slog.Int("rows", len(results)),
		slog.Int("anomalies", anomalies))
	return results, nil
}

func labelFor(decision float64) Label {
	if decision < 0 {
		return LabelAnomaly
	}
	return LabelNormal
}

// inputs checks state and schema and returns the numeric matrix of t.
func (m *Model) inputs(t *features.Table) ([][]float64, error) {
	if !m.Fitted() {
		return nil, errors.New(errors.ErrCodeInvalidState, "model is not fitted")
	}
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table is nil")
	}
	if !t.Schema.Equal(m.schema) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidInput, "table schema does not match the fitted schema",
			map[string]any{
				"want": m.schema.Names(),
				"got":  t.Schema.Names(),
			})
	}
	x := t.Matrix()
	if err := checkFinite(x); err != nil {
		return nil, err
	}
	return x, nil
}

func checkFinite(x [][]float64) error {
	for i, row := range x {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.NewWithContext(errors.ErrCodeInvalidInput, "non-finite feature value",
					map[string]any{"row": i, "column": j})
			}
		}
	}
	return nil
}
