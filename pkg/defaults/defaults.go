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

package defaults

import (
	"path/filepath"
	"time"
)

const (
	// CollectorTimeout is the default timeout for one host snapshot collection.
	// Collectors should respect parent context deadlines when shorter.
	CollectorTimeout = 10 * time.Second

	// CollectorConnectionsTimeout bounds the connection table walk, which is
	// the slowest facility on busy hosts.
	CollectorConnectionsTimeout = 5 * time.Second
)

const (
	// OutputDir is where a single audit writes its snapshot.
	OutputDir = "artifacts"

	// SnapshotFileName is the file name of a single audit snapshot.
	SnapshotFileName = "system_snapshot.json"

	// DatasetFilePattern names the sequentially numbered batch snapshots.
	DatasetFilePattern = "system_snapshot_%04d.json"

	// DatasetRuns is the default number of audits in a dataset collection.
	DatasetRuns = 10

	// DatasetInterval is the default pause between dataset audits.
	// Zero runs them back-to-back.
	DatasetInterval = time.Duration(0)

	// ModelFileName is the file name of the persisted baseline model.
	ModelFileName = "baseline_iforest.json"

	// LogFileName is the file name used when file logging is enabled
	// without an explicit path.
	LogFileName = "hostaudit.log"
)

var (
	// DatasetDir is where batch collection writes its snapshots.
	DatasetDir = filepath.Join(OutputDir, "dataset")

	// ModelPath is where the baseline model is saved and loaded from.
	ModelPath = filepath.Join(OutputDir, "models", ModelFileName)
)

const (
	// ModelNumTrees is the ensemble size of the baseline isolation forest.
	ModelNumTrees = 100

	// ModelContamination is the expected outlier fraction of the training set.
	ModelContamination = 0.05

	// ModelSeed makes forest construction reproducible.
	ModelSeed = int64(42)

	// ModelMaxSamples caps the per-tree subsample size.
	ModelMaxSamples = 256
)
