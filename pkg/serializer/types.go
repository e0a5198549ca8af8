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

package serializer

import "context"

// Serializer is an interface for serializing pipeline data.
// Implementations of this interface can serialize data to various formats
// such as JSON, YAML, or plain text tables.
//
// The context parameter is provided for implementations that perform
// blocking I/O; file and stdout writers do not consult it.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}

// Tabular is implemented by values that render as a multi-column table
// rather than the flattened FIELD/VALUE listing.
type Tabular interface {
	// Columns returns the header row.
	Columns() []string
	// Rows returns the body rows; each row has len(Columns()) cells.
	Rows() [][]string
}

// Titled is an optional interface for Tabular values. A non-empty title is
// printed on its own line above the table.
type Titled interface {
	Title() string
}
