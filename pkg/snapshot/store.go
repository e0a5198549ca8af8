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

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/serializer"
)

// Save writes the record to path, creating parent directories and replacing
// any existing file. The format follows the extension; JSON unless .yaml/.yml.
func Save(record Record, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "snapshot path is empty")
	}
	if err := serializer.ToFile(path, record); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to save snapshot", err,
			map[string]any{"path": path})
	}
	return nil
}

// wireRecord detects absent keys; a nil field was not in the file.
type wireRecord struct {
	PlatformSystem   *string `json:"platform_system" yaml:"platform_system"`
	PlatformRelease  *string `json:"platform_release" yaml:"platform_release"`
	PlatformVersion  *string `json:"platform_version" yaml:"platform_version"`
	CPUCountLogical  *uint64 `json:"cpu_count_logical" yaml:"cpu_count_logical"`
	CPUCountPhysical *uint64 `json:"cpu_count_physical" yaml:"cpu_count_physical"`
	MemoryTotal      *uint64 `json:"memory_total" yaml:"memory_total"`
	ProcessesCount   *uint64 `json:"processes_count" yaml:"processes_count"`
	DiskCount        *uint64 `json:"disk_count" yaml:"disk_count"`
	NetIfCount       *uint64 `json:"net_if_count" yaml:"net_if_count"`
	TCPConnCount     *uint64 `json:"tcp_conn_count" yaml:"tcp_conn_count"`
	UDPConnCount     *uint64 `json:"udp_conn_count" yaml:"udp_conn_count"`
}

func (w *wireRecord) record() (*Record, []string) {
	var missing []string
	str := func(key string, p *string) string {
		if p == nil {
			missing = append(missing, key)
			return ""
		}
		return *p
	}
	num := func(key string, p *uint64) uint64 {
		if p == nil {
			missing = append(missing, key)
			return 0
		}
		return *p
	}

	r := &Record{
		PlatformSystem:   str(KeyPlatformSystem, w.PlatformSystem),
		PlatformRelease:  str(KeyPlatformRelease, w.PlatformRelease),
		PlatformVersion:  str(KeyPlatformVersion, w.PlatformVersion),
		CPUCountLogical:  num(KeyCPUCountLogical, w.CPUCountLogical),
		CPUCountPhysical: num(KeyCPUCountPhysical, w.CPUCountPhysical),
		MemoryTotal:      num(KeyMemoryTotal, w.MemoryTotal),
		ProcessesCount:   num(KeyProcessesCount, w.ProcessesCount),
		DiskCount:        num(KeyDiskCount, w.DiskCount),
		NetIfCount:       num(KeyNetIfCount, w.NetIfCount),
		TCPConnCount:     num(KeyTCPConnCount, w.TCPConnCount),
		UDPConnCount:     num(KeyUDPConnCount, w.UDPConnCount),
	}
	return r, missing
}

// Load reads a record from path.
//
// Returns an ErrCodeNotFound error when the file does not exist and an
// ErrCodeParse error when the content is malformed, carries unknown keys,
// misses any field, or holds a count that is not a non-negative integer.
func Load(path string) (*Record, error) {
	ctx := map[string]any{"path": path}

	w, err := serializer.FromFile[wireRecord](path, serializer.WithStrict())
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "snapshot not found", err, ctx)
		}
		return nil, errors.WrapWithContext(errors.ErrCodeParse, "failed to parse snapshot", err, ctx)
	}

	r, missing := w.record()
	if len(missing) > 0 {
		return nil, errors.WrapWithContext(errors.ErrCodeParse, "incomplete snapshot",
			fmt.Errorf("missing fields: %s", strings.Join(missing, ", ")), ctx)
	}
	return r, nil
}
