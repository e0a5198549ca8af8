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
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// systemNames spells kernel names the way uname does.
var systemNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "Darwin",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"openbsd": "OpenBSD",
	"netbsd":  "NetBSD",
	"solaris": "SunOS",
	"aix":     "AIX",
}

// GopsutilProvider reads the host through github.com/shirou/gopsutil.
type GopsutilProvider struct{}

// NewGopsutilProvider returns the default provider.
func NewGopsutilProvider() *GopsutilProvider {
	return &GopsutilProvider{}
}

// PlatformInfo returns the kernel name, kernel release and kernel build
// version (uname -s, -r and -v). Where uname is not available the version
// is the one the OS reports, e.g. the Windows build number. On error the
// fields that were read are still returned.
func (p *GopsutilProvider) PlatformInfo(ctx context.Context) (Platform, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Platform{}, fmt.Errorf("failed to read host info: %w", err)
	}

	platform := Platform{
		System:  systemName(info.OS),
		Release: info.KernelVersion,
	}
	version, err := kernelBuild()
	if err != nil {
		return platform, err
	}
	if version == "" {
		version = info.PlatformVersion
	}
	platform.Version = version
	return platform, nil
}

func systemName(goos string) string {
	if name, ok := systemNames[strings.ToLower(goos)]; ok {
		return name
	}
	return cases.Title(language.Und).String(goos)
}

// CPUCounts returns logical and physical core counts.
func (p *GopsutilProvider) CPUCounts(ctx context.Context) (uint64, uint64, error) {
	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count logical cpus: %w", err)
	}
	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		return nonNegative(logical), 0, fmt.Errorf("failed to count physical cpus: %w", err)
	}
	return nonNegative(logical), nonNegative(physical), nil
}

// MemoryTotal returns installed memory in bytes.
func (p *GopsutilProvider) MemoryTotal(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read memory: %w", err)
	}
	return vm.Total, nil
}

// ProcessCount returns the number of running processes.
func (p *GopsutilProvider) ProcessCount(ctx context.Context) (uint64, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list processes: %w", err)
	}
	return uint64(len(pids)), nil
}

// DiskPartitionCount returns the number of mounted physical partitions.
func (p *GopsutilProvider) DiskPartitionCount(ctx context.Context) (uint64, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to list partitions: %w", err)
	}
	return uint64(len(parts)), nil
}

// NetInterfaceCount returns the number of network interfaces.
func (p *GopsutilProvider) NetInterfaceCount(ctx context.Context) (uint64, error) {
	ifaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list interfaces: %w", err)
	}
	return uint64(len(ifaces)), nil
}

// ConnectionCounts returns the number of TCP and UDP sockets, IPv4 and IPv6.
// Reading other users' sockets may require elevated privileges.
func (p *GopsutilProvider) ConnectionCounts(ctx context.Context) (uint64, uint64, error) {
	tcp, err := net.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list tcp connections: %w", err)
	}
	udp, err := net.ConnectionsWithContext(ctx, "udp")
	if err != nil {
		return uint64(len(tcp)), 0, fmt.Errorf("failed to list udp connections: %w", err)
	}
	return uint64(len(tcp)), uint64(len(udp)), nil
}

func nonNegative(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}
