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
	"strconv"
)

// Kind is the value type of a column.
type Kind string

const (
	KindString  Kind = "string"
	KindNumeric Kind = "numeric"
)

// Column names one position of a row.
type Column struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Schema is the ordered column list of a table.
type Schema []Column

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Numeric returns the positions of the numeric columns.
func (s Schema) Numeric() []int {
	var idx []int
	for i, c := range s {
		if c.Kind == KindNumeric {
			idx = append(idx, i)
		}
	}
	return idx
}

// Equal reports whether both schemas have the same columns in the same order.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Value is one cell. The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// String returns a string cell.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumeric, num: f}
}

// Kind returns the cell type.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindString
	}
	return v.kind
}

// Float returns the numeric value; zero for string cells.
func (v Value) Float() float64 {
	return v.num
}

// Text returns the cell as text. Numbers use the shortest exact form.
func (v Value) Text() string {
	if v.Kind() == KindNumeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.Text()
}

func (v Value) check(c Column) error {
	if v.Kind() != c.Kind {
		return fmt.Errorf("column %q expects %s, got %s", c.Name, c.Kind, v.Kind())
	}
	return nil
}
