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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostaudit/hostaudit/pkg/errors"
)

func sampleRecord() Record {
	return Record{
		PlatformSystem:   "Linux",
		PlatformRelease:  "6.8.0-45-generic",
		PlatformVersion:  "#45-Ubuntu SMP PREEMPT_DYNAMIC",
		CPUCountLogical:  16,
		CPUCountPhysical: 8,
		MemoryTotal:      67108864000,
		ProcessesCount:   412,
		DiskCount:        5,
		NetIfCount:       4,
		TCPConnCount:     58,
		UDPConnCount:     12,
	}
}

func TestRecord_Fields(t *testing.T) {
	fields := sampleRecord().Fields()
	require.Len(t, fields, 11)

	wantKeys := []string{
		KeyPlatformSystem, KeyPlatformRelease, KeyPlatformVersion,
		KeyCPUCountLogical, KeyCPUCountPhysical, KeyMemoryTotal,
		KeyProcessesCount, KeyDiskCount, KeyNetIfCount,
		KeyTCPConnCount, KeyUDPConnCount,
	}
	for i, f := range fields {
		assert.Equal(t, wantKeys[i], f.Key)
	}
	assert.Equal(t, "Linux", fields[0].Value)
	assert.Equal(t, uint64(412), fields[6].Value)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	names := []string{
		"system_snapshot.json",
		"system_snapshot.yaml",
		"system_snapshot.txt",
		"system_snapshot.table",
		"system_snapshot",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			want := sampleRecord()

			require.NoError(t, Save(want, path))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, *got)
		})
	}
}

func TestSave_KeyOrderAndIndent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system_snapshot.json")
	require.NoError(t, Save(sampleRecord(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.True(t, strings.HasPrefix(text, "{\n  \"platform_system\": \"Linux\""), text)

	last := -1
	for _, f := range sampleRecord().Fields() {
		idx := strings.Index(text, `"`+f.Key+`"`)
		require.GreaterOrEqual(t, idx, 0, f.Key)
		assert.Greater(t, idx, last, "key %s out of order", f.Key)
		last = idx
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system_snapshot.json")
	first := sampleRecord()
	second := sampleRecord()
	second.ProcessesCount = 1

	require.NoError(t, Save(first, path))
	require.NoError(t, Save(second, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ProcessesCount)
}

func TestSave_EmptyPath(t *testing.T) {
	err := Save(sampleRecord(), " ")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestLoad_NotFound(t *testing.T) {
	for _, name := range []string{"missing.json", "missing.yaml", "missing.txt"} {
		_, err := Load(filepath.Join(t.TempDir(), name))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound), err.Error())
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	valid, err := json.Marshal(sampleRecord())
	require.NoError(t, err)

	withValue := func(key string, value any) string {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal(valid, &m))
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
		b, err := json.Marshal(m)
		require.NoError(t, err)
		return string(b)
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"truncated", "s.json", string(valid[:len(valid)/2])},
		{"empty", "s.json", ""},
		{"not json", "s.json", "platform_system = Linux"},
		{"missing field", "s.json", withValue(KeyTCPConnCount, nil)},
		{"negative count", "s.json", withValue(KeyDiskCount, -1)},
		{"fractional count", "s.json", withValue(KeyDiskCount, 1.5)},
		{"string count", "s.json", withValue(KeyDiskCount, "five")},
		{"null field", "s.json", strings.Replace(string(valid), `"disk_count":5`, `"disk_count":null`, 1)},
		{"unknown field", "s.json", withValue("gpu_count", 2)},
		{"array", "s.json", "[]"},
		{"yaml negative", "s.yaml", "platform_system: Linux\ndisk_count: -3\n"},
		{"yaml missing", "s.yaml", "platform_system: Linux\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeParse), err.Error())
		})
	}
}
