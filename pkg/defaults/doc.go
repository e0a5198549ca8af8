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

// Package defaults provides centralized configuration constants for hostaudit.
//
// This package defines timeout values, default artifact locations, and the
// fixed hyperparameters of the baseline anomaly model. Centralizing these
// values keeps the CLI, the config loader, and the library packages in
// agreement.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
//	defer cancel()
//
//	path := filepath.Join(defaults.OutputDir, defaults.SnapshotFileName)
//
// # Model Hyperparameters
//
// The baseline model is intentionally fixed-shape: 100 trees, contamination
// 0.05, seed 42. There is no hyperparameter search.
package defaults
