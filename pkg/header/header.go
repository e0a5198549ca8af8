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

package header

import (
	"fmt"
	"time"
)

// APIVersionV1 is the current artifact format version.
const APIVersionV1 = "hostaudit.dev/v1"

// Metadata keys written by WithCreated and WithVersion.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// Kind represents the type of hostaudit artifact.
type Kind string

// Valid Kind constants for all artifact types.
const (
	KindAnomalyModel Kind = "AnomalyModel"
	KindScoreReport  Kind = "ScoreReport"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k *Kind) IsValid() bool {
	switch *k {
	case KindAnomalyModel, KindScoreReport:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// WithCreated returns an Option that records t, in UTC, as the creation timestamp.
func WithCreated(t time.Time) Option {
	return WithMetadata(MetadataTimestamp, t.UTC().Format(time.RFC3339))
}

// WithVersion returns an Option that records the tool version.
// An empty version is not recorded.
func WithVersion(version string) Option {
	return func(h *Header) {
		if version != "" {
			WithMetadata(MetadataVersion, version)(h)
		}
	}
}

// New creates a new Header instance with the provided functional options.
// The Metadata map is initialized automatically.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Header contains kind, format version and free-form metadata for an artifact.
type Header struct {
	// Kind is the type of the artifact.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the format version of the artifact.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs describing the artifact.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Check returns an error unless the header carries the given kind and apiVersion.
func (h *Header) Check(kind Kind, apiVersion string) error {
	if h == nil {
		return fmt.Errorf("missing header")
	}
	if !h.Kind.IsValid() {
		return fmt.Errorf("unknown kind %q", h.Kind)
	}
	if h.Kind != kind {
		return fmt.Errorf("unexpected kind %q, want %q", h.Kind, kind)
	}
	if h.APIVersion != apiVersion {
		return fmt.Errorf("unsupported apiVersion %q, want %q", h.APIVersion, apiVersion)
	}
	return nil
}

// Created parses the timestamp metadata written by WithCreated.
// Returns the zero time when the value is absent or malformed.
func (h *Header) Created() time.Time {
	if h == nil {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	if err != nil {
		return time.Time{}
	}
	return ts
}
