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

// Package anomaly provides the isolation forest baseline model.
//
// # Algorithm
//
// Fit grows an ensemble of random isolation trees. Each tree is built from
// a subsample of at most 256 rows drawn without replacement and is limited
// to ceil(log2(sampleSize)) levels. A node splits on a feature chosen at
// random among those that vary within the node, at a threshold drawn
// uniformly between the feature's minimum and maximum. Rows that are easy to
// isolate end up in shallow leaves.
//
// The score of a row is
//
//	s(x) = -2^(-E[h(x)] / c(psi))
//
// where h(x) is the path length in one tree plus the expected remaining
// depth of the leaf, and c(psi) normalises by the average path length of a
// tree over psi samples. Scores lie in [-1, 0); lower is more anomalous.
//
// The decision offset is the contamination percentile of the training
// scores, so about that fraction of the training set falls below it. Rows
// whose score minus the offset is negative are labelled ANOMALY.
//
// # Lifecycle
//
//	m, err := anomaly.New(anomaly.WithLogger(log)).Fit(table)
//	if err != nil {
//	    return err
//	}
//	if err := m.Save("artifacts/models/baseline_iforest.json"); err != nil {
//	    return err
//	}
//
//	m, err = anomaly.Load("artifacts/models/baseline_iforest.json")
//	results, err := m.Evaluate(current)
//
// Scoring an unfitted model is an ErrCodeInvalidState error. Scoring a table
// whose schema differs from the one the model was fitted on is an
// ErrCodeInvalidInput error.
//
// Fitting is deterministic for a given seed and training table.
package anomaly
