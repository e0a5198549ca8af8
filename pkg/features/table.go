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

package features

import (
	"fmt"

	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/snapshot"
)

// SnapshotSchema mirrors snapshot.Record field for field.
var SnapshotSchema = Schema{
	{Name: snapshot.KeyPlatformSystem, Kind: KindString},
	{Name: snapshot.KeyPlatformRelease, Kind: KindString},
	{Name: snapshot.KeyPlatformVersion, Kind: KindString},
	{Name: snapshot.KeyCPUCountLogical, Kind: KindNumeric},
	{Name: snapshot.KeyCPUCountPhysical, Kind: KindNumeric},
	{Name: snapshot.KeyMemoryTotal, Kind: KindNumeric},
	{Name: snapshot.KeyProcessesCount, Kind: KindNumeric},
	{Name: snapshot.KeyDiskCount, Kind: KindNumeric},
	{Name: snapshot.KeyNetIfCount, Kind: KindNumeric},
	{Name: snapshot.KeyTCPConnCount, Kind: KindNumeric},
	{Name: snapshot.KeyUDPConnCount, Kind: KindNumeric},
}

// Table is a feature grid; every row matches Schema positionally.
type Table struct {
	Schema Schema
	Rows   [][]Value
}

// NewTable returns an empty table with a copy of schema.
func NewTable(schema Schema) *Table {
	return &Table{Schema: append(Schema(nil), schema...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append adds a row after checking its width and cell kinds.
func (t *Table) Append(row []Value) error {
	if len(row) != len(t.Schema) {
		return errors.NewWithContext(errors.ErrCodeInvalidInput,
			fmt.Sprintf("row has %d values, schema has %d columns", len(row), len(t.Schema)),
			map[string]any{"row": len(t.Rows)})
	}
	for i, v := range row {
		if err := v.check(t.Schema[i]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, "row does not match schema", err)
		}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]Value, error) {
	idx := t.Schema.Index(name)
	if idx < 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidInput, "unknown column",
			map[string]any{"column": name})
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Matrix returns the numeric columns as a row-major float grid.
func (t *Table) Matrix() [][]float64 {
	idx := t.Schema.Numeric()
	out := make([][]float64, len(t.Rows))
	for i, row := range t.Rows {
		vec := make([]float64, len(idx))
		for j, k := range idx {
			vec[j] = row[k].Float()
		}
		out[i] = vec
	}
	return out
}

// Row converts a record into a SnapshotSchema row.
func Row(r snapshot.Record) []Value {
	fields := r.Fields()
	row := make([]Value, len(fields))
	for i, f := range fields {
		switch v := f.Value.(type) {
		case string:
			row[i] = String(v)
		case uint64:
			row[i] = Number(float64(v))
		}
	}
	return row
}

// FromRecords builds a SnapshotSchema table from in-memory records.
func FromRecords(records ...snapshot.Record) *Table {
	t := NewTable(SnapshotSchema)
	t.Rows = make([][]Value, 0, len(records))
	for _, r := range records {
		t.Rows = append(t.Rows, Row(r))
	}
	return t
}
