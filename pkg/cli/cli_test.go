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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostaudit/hostaudit/pkg/collector"
	"github.com/hostaudit/hostaudit/pkg/config"
	"github.com/hostaudit/hostaudit/pkg/defaults"
	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/header"
	"github.com/hostaudit/hostaudit/pkg/snapshot"
)

// steppingProvider reports a fixed host whose connection count grows by
// one on every collection.
type steppingProvider struct {
	calls atomic.Uint64
}

func (p *steppingProvider) PlatformInfo(context.Context) (collector.Platform, error) {
	return collector.Platform{System: "Linux", Release: "6.8.0", Version: "ubuntu 24.04"}, nil
}

func (p *steppingProvider) CPUCounts(context.Context) (uint64, uint64, error) {
	return 8, 4, nil
}

func (p *steppingProvider) MemoryTotal(context.Context) (uint64, error) {
	return 16 << 30, nil
}

func (p *steppingProvider) ProcessCount(context.Context) (uint64, error) {
	return 240, nil
}

func (p *steppingProvider) DiskPartitionCount(context.Context) (uint64, error) {
	return 3, nil
}

func (p *steppingProvider) NetInterfaceCount(context.Context) (uint64, error) {
	return 2, nil
}

func (p *steppingProvider) ConnectionCounts(context.Context) (uint64, uint64, error) {
	n := p.calls.Add(1)
	return 20 + n, 5, nil
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")

	a := &app{
		factory:   &collector.DefaultFactory{Provider: &steppingProvider{}},
		logOutput: &bytes.Buffer{},
	}
	var out bytes.Buffer
	cmd := newRootCmd(a)
	cmd.Writer = &out
	cmd.ErrWriter = &bytes.Buffer{}

	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func TestAudit_WritesSnapshot(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "audit", "system", "-o", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, defaults.SnapshotFileName)
	assert.Contains(t, out, "System audit")
	assert.Contains(t, out, "Audit complete. JSON: "+path)

	rec, err := snapshot.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Linux", rec.PlatformSystem)
	assert.Equal(t, uint64(21), rec.TCPConnCount)
}

func TestAudit_DefaultTarget(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "audit", "--output-dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, defaults.SnapshotFileName))
}

func TestAudit_RejectsTarget(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unsupported target", []string{"audit", "network"}},
		{"too many targets", []string{"audit", "system", "system"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := run(t, append(tt.args, "-o", dir)...)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
			assert.NoFileExists(t, filepath.Join(dir, defaults.SnapshotFileName))
		})
	}
}

func TestCollectDataset_WritesRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dataset")

	out, err := run(t, "collect-dataset", "--runs", "3", "--dataset-dir", dir)
	require.NoError(t, err)

	for _, f := range []string{"system_snapshot_0000.json", "system_snapshot_0001.json", "system_snapshot_0002.json"} {
		assert.FileExists(t, filepath.Join(dir, f))
		assert.Contains(t, out, filepath.Join(dir, f))
	}
	assert.Contains(t, out, "Sample #2:")
}

func TestCollectDataset_ZeroRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dataset")

	_, err := run(t, "collect-dataset", "--runs", "0", "--dataset-dir", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCollectDataset_NegativeRuns(t *testing.T) {
	_, err := run(t, "collect-dataset", "--runs", "-1", "--dataset-dir", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestTrainBaseline_Errors(t *testing.T) {
	empty := t.TempDir()
	missing := filepath.Join(t.TempDir(), "nope")

	tests := []struct {
		name string
		dir  string
		code errors.ErrorCode
	}{
		{"missing directory", missing, errors.ErrCodeNotFound},
		{"empty directory", empty, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := filepath.Join(t.TempDir(), "model.json")
			_, err := run(t, "train-baseline", "--data-dir", tt.dir, "--model-path", model)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
			assert.NoFileExists(t, model)
		})
	}
}

func TestTrainBaseline_BadSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"platform_system":`), 0o600))

	_, err := run(t, "train-baseline", "--data-dir", dir, "--model-path", filepath.Join(dir, "m.json"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeParse), "got %v", err)
}

func TestScore_MissingInputs(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "score", "--data-dir", dir, "--model-path", filepath.Join(dir, "m.json"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound), "missing snapshot: %v", err)

	_, err = run(t, "audit", "-o", dir)
	require.NoError(t, err)

	_, err = run(t, "score", "--data-dir", dir, "--model-path", filepath.Join(dir, "m.json"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound), "missing model: %v", err)
}

func TestScore_FlagValidation(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "score", "--data-dir", dir, "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	_, err = run(t, "score", "--data-dir", dir, "--all", "--snapshot", "x.json")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestPipeline(t *testing.T) {
	root := t.TempDir()
	dataset := filepath.Join(root, "dataset")
	model := filepath.Join(root, "models", "baseline.json")
	metricsFile := filepath.Join(root, "hostaudit.prom")

	_, err := run(t, "collect-dataset", "--runs", "12", "--dataset-dir", dataset)
	require.NoError(t, err)

	out, err := run(t, "train-baseline", "--data-dir", dataset, "--model-path", model)
	require.NoError(t, err)
	assert.Contains(t, out, "Model saved: "+model)
	assert.FileExists(t, model)

	_, err = run(t, "audit", "-o", root)
	require.NoError(t, err)

	out, err = run(t, "--metrics-file", metricsFile, "score", "--data-dir", root, "--model-path", model)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Baseline anomaly scoring", lines[0])
	assert.Equal(t, []string{"sample_id", "score", "label"}, strings.Fields(lines[1]))
	row := strings.Fields(lines[3])
	require.Len(t, row, 3)
	assert.Equal(t, "0", row[0])
	assert.Contains(t, []string{"NORMAL", "ANOMALY"}, row[2])

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "hostaudit_samples_scored_total")
	assert.Contains(t, string(prom), `hostaudit_commands_total{command="score",outcome="success"}`)

	out, err = run(t, "score", "--all", "--data-dir", dataset, "--model-path", model, "--format", "json")
	require.NoError(t, err)

	var report scoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "ScoreReport", string(report.Kind))
	require.Len(t, report.Samples, 12)
	for i, s := range report.Samples {
		assert.Equal(t, i, s.SampleID)
		assert.InDelta(t, s.Score-report.Offset, s.Decision, 1e-9)
	}
	assert.Equal(t, version, report.Metadata[header.MetadataVersion])
	assert.False(t, report.Created().IsZero())
}

func TestScore_Output(t *testing.T) {
	root := t.TempDir()
	dataset := filepath.Join(root, "dataset")
	model := filepath.Join(root, "model.json")

	_, err := run(t, "collect-dataset", "--runs", "6", "--dataset-dir", dataset)
	require.NoError(t, err)
	_, err = run(t, "train-baseline", "--data-dir", dataset, "--model-path", model)
	require.NoError(t, err)

	jsonReport := filepath.Join(root, "reports", "scores.json")
	out, err := run(t, "score", "--all", "--data-dir", dataset, "--model-path", model, "--output", jsonReport)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(jsonReport)
	require.NoError(t, err)
	var report scoreReport
	require.NoError(t, json.Unmarshal(content, &report))
	assert.Len(t, report.Samples, 6)

	tableReport := filepath.Join(root, "reports", "scores.txt")
	_, err = run(t, "score", "--all", "--data-dir", dataset, "--model-path", model, "-o", tableReport)
	require.NoError(t, err)
	content, err = os.ReadFile(tableReport)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Baseline anomaly scoring\n"), string(content))

	forced := filepath.Join(root, "reports", "forced.txt")
	_, err = run(t, "score", "--all", "--data-dir", dataset, "--model-path", model, "-o", forced, "--format", "yaml")
	require.NoError(t, err)
	content, err = os.ReadFile(forced)
	require.NoError(t, err)
	assert.Contains(t, string(content), "kind: ScoreReport")
}
