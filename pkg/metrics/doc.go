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

// Package metrics holds the Prometheus collectors for the audit pipeline.
//
// Collectors are package-level and attach to a registry through Register.
// Short-lived commands export the registry in node-exporter textfile format
// with WriteTextfile instead of serving it over HTTP:
//
//	reg := prometheus.NewRegistry()
//	if err := metrics.Register(reg); err != nil {
//	    return err
//	}
//	defer metrics.WriteTextfile(reg, "/var/lib/node_exporter/hostaudit.prom")
package metrics
