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

package collector

// Factory creates collectors.
type Factory interface {
	CreateHostCollector(opts ...Option) Collector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Provider Provider
}

// NewDefaultFactory creates a factory backed by the gopsutil provider.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{
		Provider: NewGopsutilProvider(),
	}
}

// CreateHostCollector creates a host collector using the factory provider.
// Options may still override the provider.
func (f *DefaultFactory) CreateHostCollector(opts ...Option) Collector {
	return NewHostCollector(append([]Option{WithProvider(f.Provider)}, opts...)...)
}
