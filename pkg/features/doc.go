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

// Package features turns snapshot files into a feature table.
//
// A Table is a positional grid described by a named Schema. Each column is
// either a string (platform identification) or numeric (a count). The model
// consumes only the numeric columns through Table.Matrix.
//
// Extraction is fail-fast: the first snapshot that cannot be loaded aborts
// the whole call and its NotFound or ParseError is returned. No partial
// table is produced.
//
//	paths, err := features.ListSnapshots("artifacts/dataset")
//	if err != nil {
//	    return err
//	}
//	table, err := features.Extract(paths, features.WithLogger(log))
package features
