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

import (
	"context"
)

// Platform identifies the operating system.
type Platform struct {
	System  string
	Release string
	Version string
}

// Provider is the operating system interface used by HostCollector.
// Each method queries one facility and may fail independently. Methods with
// several results return what they could read alongside the error; unread
// results are zero.
type Provider interface {
	PlatformInfo(ctx context.Context) (Platform, error)
	CPUCounts(ctx context.Context) (logical, physical uint64, err error)
	MemoryTotal(ctx context.Context) (uint64, error)
	ProcessCount(ctx context.Context) (uint64, error)
	DiskPartitionCount(ctx context.Context) (uint64, error)
	NetInterfaceCount(ctx context.Context) (uint64, error)
	ConnectionCounts(ctx context.Context) (tcp, udp uint64, err error)
}
