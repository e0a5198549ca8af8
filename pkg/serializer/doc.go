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

// Package serializer provides utilities for serializing pipeline data to
// various formats.
//
// The package supports three output formats:
//   - JSON: Machine-readable structured data with 2-space indentation
//   - YAML: Human-readable configuration format
//   - Table: Human-readable tabular output
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatJSON, os.Stdout)
//	if err := writer.Serialize(ctx, data); err != nil {
//		return err
//	}
//
// Files are written whole: WriteFile and ToFile stage content in a temporary
// file in the destination directory and rename it into place, so readers
// never observe a half-written file from a completed write.
//
// Data files written with ToFile are YAML for .yaml/.yml and JSON for any
// other extension, so FromFile can always read them back:
//
//	rec, err := serializer.FromFile[snapshot.Record]("system_snapshot.json")
//
// Report files opened with NewFileWriterOrStdout may also be tables
// (.table, .txt); see FormatFromPath.
//
// Table output flattens nested structures into FIELD/VALUE pairs, unless the
// value implements Tabular, in which case its own columns are rendered.
package serializer
