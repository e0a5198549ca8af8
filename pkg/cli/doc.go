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

// Package cli implements the hostaudit command-line interface.
//
// # Commands
//
// audit - Snapshot the current host:
//
//	hostaudit audit [system] [--output-dir artifacts]
//
// Collects platform, CPU, memory, process, disk and network counts and
// writes them to <output-dir>/system_snapshot.json. Only the "system"
// target is supported.
//
// collect-dataset - Build a training set:
//
//	hostaudit collect-dataset --runs 50 --interval 1m --dataset-dir artifacts/dataset
//
// Runs the audit repeatedly and writes system_snapshot_0000.json,
// system_snapshot_0001.json, ... into the dataset directory.
//
// train-baseline - Fit the isolation forest:
//
//	hostaudit train-baseline --data-dir artifacts/dataset --model-path artifacts/models/baseline_iforest.json
//
// score - Score snapshots against the baseline:
//
//	hostaudit score [--data-dir artifacts] [--snapshot file] [--all] [--format table|json|yaml]
//
// Prints sample_id, score and label (NORMAL or ANOMALY) for each snapshot.
//
// # Global Flags
//
//	--config        YAML configuration file (env HOSTAUDIT_CONFIG)
//	--log-level     debug, info, warn, error (env LOG_LEVEL)
//	--log-file      Also write logs to a size-rotated file
//	--metrics-file  Write Prometheus textfile metrics after the command
//	--version, -v   Show version information
//
// # Exit Codes
//
//	0  Success
//	1  Any error: unsupported target, missing data or model, empty dataset
package cli
