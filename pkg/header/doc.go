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

// Package header provides the common header carried by hostaudit artifacts.
//
// Persisted models and score reports start with a Header so tools can tell
// what a file holds and which format version produced it:
//
//	{
//	  "kind": "AnomalyModel",
//	  "apiVersion": "hostaudit.dev/v1",
//	  "metadata": {
//	    "timestamp": "2026-01-30T10:30:00Z",
//	    "version": "v0.3.0",
//	    "id": "5f0c9a4e-..."
//	  }
//	}
//
// # Usage
//
//	h := header.New(
//	    header.WithKind(header.KindAnomalyModel),
//	    header.WithAPIVersion(header.APIVersionV1),
//	    header.WithMetadata("id", uuid.NewString()),
//	)
//
// Readers should check both fields before trusting the payload:
//
//	if err := h.Check(header.KindAnomalyModel, header.APIVersionV1); err != nil {
//	    return err
//	}
//
// Snapshot records are deliberately header-less: their on-disk shape is the
// flat 11-key object consumed by other tooling.
package header
