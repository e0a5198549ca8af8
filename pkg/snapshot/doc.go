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

// Package snapshot defines the host snapshot record and its file store.
//
// A Record is a point-in-time summary of one host: three platform
// identification strings and eight non-negative counts. Records are values;
// nothing mutates them after collection.
//
// # File Format
//
// Records are stored as a flat JSON object with two-space indentation and
// the keys in a fixed order:
//
//	{
//	  "platform_system": "Linux",
//	  "platform_release": "6.8.0-45-generic",
//	  "platform_version": "#45-Ubuntu SMP PREEMPT_DYNAMIC",
//	  "cpu_count_logical": 16,
//	  "cpu_count_physical": 8,
//	  "memory_total": 67108864000,
//	  "processes_count": 412,
//	  "disk_count": 5,
//	  "net_if_count": 4,
//	  "tcp_conn_count": 58,
//	  "udp_conn_count": 12
//	}
//
// Files ending in .yaml or .yml are written and read as YAML instead.
//
// # Usage
//
//	if err := snapshot.Save(rec, "artifacts/system_snapshot.json"); err != nil {
//	    return err
//	}
//
//	rec, err := snapshot.Load("artifacts/system_snapshot.json")
//	switch {
//	case errors.IsCode(err, errors.ErrCodeNotFound):
//	    // no snapshot yet
//	case errors.IsCode(err, errors.ErrCodeParse):
//	    // truncated or hand-edited file
//	}
//
// Save replaces the target atomically, so a reader never observes a
// partially written snapshot.
package snapshot
