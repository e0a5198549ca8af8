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

// Package config loads the hostaudit settings.
//
// Values are resolved in order: built-in defaults, then an optional YAML file
// (path argument or HOSTAUDIT_CONFIG), then HOSTAUDIT_* environment
// variables. The CLI applies explicitly set flags last.
//
// Example file:
//
//	outputDir: /var/lib/hostaudit
//	collect:
//	  processes: true
//	  network: false
//	  timeout: 15s
//	dataset:
//	  dir: /var/lib/hostaudit/dataset
//	  runs: 50
//	  interval: 1m
//	model:
//	  path: /var/lib/hostaudit/models/baseline_iforest.json
//	  contamination: 0.02
//	logging:
//	  level: debug
//	  file: /var/log/hostaudit.log
//	metrics:
//	  file: /var/lib/node_exporter/textfile/hostaudit.prom
package config
