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

package snapshot

// Field keys in file order.
const (
	KeyPlatformSystem   = "platform_system"
	KeyPlatformRelease  = "platform_release"
	KeyPlatformVersion  = "platform_version"
	KeyCPUCountLogical  = "cpu_count_logical"
	KeyCPUCountPhysical = "cpu_count_physical"
	KeyMemoryTotal      = "memory_total"
	KeyProcessesCount   = "processes_count"
	KeyDiskCount        = "disk_count"
	KeyNetIfCount       = "net_if_count"
	KeyTCPConnCount     = "tcp_conn_count"
	KeyUDPConnCount     = "udp_conn_count"
)

// Record is a point-in-time summary of one host.
// Counts a facility could not report are zero.
type Record struct {
	PlatformSystem   string `json:"platform_system" yaml:"platform_system"`
	PlatformRelease  string `json:"platform_release" yaml:"platform_release"`
	PlatformVersion  string `json:"platform_version" yaml:"platform_version"`
	CPUCountLogical  uint64 `json:"cpu_count_logical" yaml:"cpu_count_logical"`
	CPUCountPhysical uint64 `json:"cpu_count_physical" yaml:"cpu_count_physical"`
	MemoryTotal      uint64 `json:"memory_total" yaml:"memory_total"`
	ProcessesCount   uint64 `json:"processes_count" yaml:"processes_count"`
	DiskCount        uint64 `json:"disk_count" yaml:"disk_count"`
	NetIfCount       uint64 `json:"net_if_count" yaml:"net_if_count"`
	TCPConnCount     uint64 `json:"tcp_conn_count" yaml:"tcp_conn_count"`
	UDPConnCount     uint64 `json:"udp_conn_count" yaml:"udp_conn_count"`
}

// Field is one named value of a Record.
// Value is a string for platform fields and a uint64 for counts.
type Field struct {
	Key   string
	Value any
}

// Fields returns the record's values in file order.
func (r Record) Fields() []Field {
	return []Field{
		{KeyPlatformSystem, r.PlatformSystem},
		{KeyPlatformRelease, r.PlatformRelease},
		{KeyPlatformVersion, r.PlatformVersion},
		{KeyCPUCountLogical, r.CPUCountLogical},
		{KeyCPUCountPhysical, r.CPUCountPhysical},
		{KeyMemoryTotal, r.MemoryTotal},
		{KeyProcessesCount, r.ProcessesCount},
		{KeyDiskCount, r.DiskCount},
		{KeyNetIfCount, r.NetIfCount},
		{KeyTCPConnCount, r.TCPConnCount},
		{KeyUDPConnCount, r.UDPConnCount},
	}
}
