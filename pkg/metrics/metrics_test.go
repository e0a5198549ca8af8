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

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))
}

func TestRegister_Conflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	clash := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "anomalies_total",
		Help:      "conflicting type",
	})
	require.NoError(t, reg.Register(clash))
	assert.Error(t, Register(reg))
}

func TestObserveCollection(t *testing.T) {
	before := testutil.ToFloat64(collectionsTotal.WithLabelValues(OutcomeError))
	ObserveCollection(time.Second, errors.New("boom"))
	ObserveCollection(-time.Second, nil)
	after := testutil.ToFloat64(collectionsTotal.WithLabelValues(OutcomeError))
	assert.Equal(t, before+1, after)
}

func TestFacilityFailed(t *testing.T) {
	before := testutil.ToFloat64(facilityFailuresTotal.WithLabelValues("network"))
	FacilityFailed("network")
	assert.Equal(t, before+1, testutil.ToFloat64(facilityFailuresTotal.WithLabelValues("network")))
}

func TestObserveScores(t *testing.T) {
	scored := testutil.ToFloat64(samplesScoredTotal)
	anomalies := testutil.ToFloat64(anomaliesTotal)

	ObserveScores(10, 1)

	assert.Equal(t, scored+10, testutil.ToFloat64(samplesScoredTotal))
	assert.Equal(t, anomalies+1, testutil.ToFloat64(anomaliesTotal))
}

func TestObserveFit(t *testing.T) {
	ObserveFit(50*time.Millisecond, 42)
	assert.Equal(t, 42.0, testutil.ToFloat64(modelTrainingSamples))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	ObserveCommand("audit", nil)
	SnapshotWritten()

	path := filepath.Join(t.TempDir(), "hostaudit.prom")
	require.NoError(t, WriteTextfile(reg, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.Contains(text, `hostaudit_commands_total{command="audit",outcome="success"}`), text)
	assert.Contains(t, text, "hostaudit_snapshots_written_total")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	err := WriteTextfile(reg, filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.Error(t, err)
}
