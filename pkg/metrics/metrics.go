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
	stderrors "errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hostaudit"

const (
	// OutcomeSuccess labels successful operations.
	OutcomeSuccess = "success"
	// OutcomeError labels failed operations.
	OutcomeError = "error"
)

var (
	collectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collections_total",
			Help:      "Total number of host snapshot collections, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	collectionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collection_duration_seconds",
			Help:      "Time taken to collect one host snapshot.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	facilityFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "facility_failures_total",
			Help:      "Host facility queries that failed and were reported as zero.",
		},
		[]string{"facility"},
	)

	snapshotsWrittenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_written_total",
			Help:      "Snapshot files written to disk.",
		},
	)

	modelFitDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_fit_duration_seconds",
			Help:      "Time taken to fit the isolation forest.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	modelTrainingSamples = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_training_samples",
			Help:      "Rows in the table the current model was fitted on.",
		},
	)

	samplesScoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_scored_total",
			Help:      "Feature rows scored by the model.",
		},
	)

	anomaliesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomalies_total",
			Help:      "Feature rows labeled ANOMALY.",
		},
	)

	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "CLI command executions, partitioned by command and outcome.",
		},
		[]string{"command", "outcome"},
	)
)

// Register attaches the pipeline collectors to the supplied registerer.
// Collectors already registered are skipped.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		collectionsTotal,
		collectionDurationSeconds,
		facilityFailuresTotal,
		snapshotsWrittenTotal,
		modelFitDurationSeconds,
		modelTrainingSamples,
		samplesScoredTotal,
		anomaliesTotal,
		commandsTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var are prometheus.AlreadyRegisteredError
			if stderrors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

func seconds(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return d.Seconds()
}

// ObserveCollection records one snapshot collection.
func ObserveCollection(duration time.Duration, err error) {
	collectionsTotal.WithLabelValues(outcome(err)).Inc()
	collectionDurationSeconds.Observe(seconds(duration))
}

// FacilityFailed counts a facility query that fell back to zero.
func FacilityFailed(facility string) {
	facilityFailuresTotal.WithLabelValues(facility).Inc()
}

// SnapshotWritten counts a persisted snapshot file.
func SnapshotWritten() {
	snapshotsWrittenTotal.Inc()
}

// ObserveFit records a completed model fit over samples rows.
func ObserveFit(duration time.Duration, samples int) {
	modelFitDurationSeconds.Observe(seconds(duration))
	modelTrainingSamples.Set(float64(samples))
}

// ObserveScores records a scoring pass and how many rows were anomalous.
func ObserveScores(scored, anomalies int) {
	samplesScoredTotal.Add(float64(scored))
	anomaliesTotal.Add(float64(anomalies))
}

// ObserveCommand records one CLI command execution.
func ObserveCommand(command string, err error) {
	commandsTotal.WithLabelValues(command, outcome(err)).Inc()
}

// WriteTextfile writes everything gathered from g to path in the
// node-exporter textfile collector format. The file is replaced atomically.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}
