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

// Package collector gathers a host snapshot.
//
// # Overview
//
// A Collector returns one snapshot.Record describing the current host:
// platform identification, CPU and memory sizes, and counts of processes,
// disk partitions, network interfaces and TCP/UDP connections.
//
//	type Collector interface {
//	    Collect(ctx context.Context) (*snapshot.Record, error)
//	}
//
// # Providers
//
// HostCollector reads the operating system through a Provider. The default
// provider is backed by gopsutil and works on Linux, macOS and Windows. Tests
// and alternative platforms supply their own Provider:
//
//	c := collector.NewHostCollector(
//	    collector.WithProvider(fake),
//	    collector.WithLogger(log),
//	    collector.WithNetwork(false),
//	)
//	rec, err := c.Collect(ctx)
//
// # Failure Model
//
// Facilities are queried concurrently. A facility that fails (permission
// denied, unsupported platform, timeout on the connection table) is logged
// at warn level and its fields stay zero; the collection still succeeds.
// Disabled facilities also report zero. Only cancellation or expiry of the
// caller's context fails Collect.
//
// # Factory
//
// The CLI takes a Factory so command tests can replace the host:
//
//	factory := collector.NewDefaultFactory()
//	c := factory.CreateHostCollector(collector.WithProcesses(false))
package collector
