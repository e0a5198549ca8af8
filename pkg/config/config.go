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

package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hostaudit/hostaudit/pkg/defaults"
	"github.com/hostaudit/hostaudit/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HOSTAUDIT_"

// EnvConfig names the environment variable holding the config file path.
const EnvConfig = EnvPrefix + "CONFIG"

// AuditConfig captures every setting of the audit pipeline.
type AuditConfig struct {
	OutputDir string        `yaml:"outputDir"`
	Collect   CollectConfig `yaml:"collect"`
	Dataset   DatasetConfig `yaml:"dataset"`
	Model     ModelConfig   `yaml:"model"`
	Logging   LoggingConfig `yaml:"logging"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

// CollectConfig toggles host facilities. A disabled facility reports zero.
type CollectConfig struct {
	SystemInfo bool          `yaml:"systemInfo"`
	Processes  bool          `yaml:"processes"`
	Network    bool          `yaml:"network"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DatasetConfig controls batch collection.
type DatasetConfig struct {
	Dir      string        `yaml:"dir"`
	Runs     int           `yaml:"runs"`
	Interval time.Duration `yaml:"interval"`
}

// ModelConfig controls where the baseline lives and how it is fitted.
type ModelConfig struct {
	Path          string  `yaml:"path"`
	Trees         int     `yaml:"trees"`
	Contamination float64 `yaml:"contamination"`
	Seed          int64   `yaml:"seed"`
	MaxSamples    int     `yaml:"maxSamples"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// MetricsConfig controls the textfile export. Empty File disables it.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() AuditConfig {
	return AuditConfig{
		OutputDir: defaults.OutputDir,
		Collect: CollectConfig{
			SystemInfo: true,
			Processes:  true,
			Network:    true,
			Timeout:    defaults.CollectorTimeout,
		},
		Dataset: DatasetConfig{
			Dir:      defaults.DatasetDir,
			Runs:     defaults.DatasetRuns,
			Interval: defaults.DatasetInterval,
		},
		Model: ModelConfig{
			Path:          defaults.ModelPath,
			Trees:         defaults.ModelNumTrees,
			Contamination: defaults.ModelContamination,
			Seed:          defaults.ModelSeed,
			MaxSamples:    defaults.ModelMaxSamples,
		},
		Logging: LoggingConfig{
			Level:      "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load resolves the configuration from defaults, the YAML file at path
// (or HOSTAUDIT_CONFIG when path is empty) and environment overrides.
func Load(path string) (*AuditConfig, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "config file not found", err,
					map[string]any{"path": path})
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read config", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.WrapWithContext(errors.ErrCodeParse, "failed to parse config", err,
				map[string]any{"path": path})
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *AuditConfig) error {
	str := func(name string, dst *string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}

	str("OUTPUT_DIR", &cfg.OutputDir)
	str("DATASET_DIR", &cfg.Dataset.Dir)
	str("MODEL_PATH", &cfg.Model.Path)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FILE", &cfg.Logging.File)
	str("METRICS_FILE", &cfg.Metrics.File)

	var errs []error
	parse := func(name string, fn func(string) error) {
		v := os.Getenv(EnvPrefix + name)
		if v == "" {
			return
		}
		if err := fn(v); err != nil {
			errs = append(errs, fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, err))
		}
	}
	boolean := func(dst *bool) func(string) error {
		return func(v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err == nil {
				*dst = b
			}
			return err
		}
	}
	duration := func(dst *time.Duration) func(string) error {
		return func(v string) error {
			d, err := time.ParseDuration(v)
			if err == nil {
				*dst = d
			}
			return err
		}
	}
	integer := func(dst *int) func(string) error {
		return func(v string) error {
			n, err := strconv.Atoi(v)
			if err == nil {
				*dst = n
			}
			return err
		}
	}

	parse("COLLECT_SYSTEM_INFO", boolean(&cfg.Collect.SystemInfo))
	parse("COLLECT_PROCESSES", boolean(&cfg.Collect.Processes))
	parse("COLLECT_NETWORK", boolean(&cfg.Collect.Network))
	parse("COLLECT_TIMEOUT", duration(&cfg.Collect.Timeout))
	parse("DATASET_RUNS", integer(&cfg.Dataset.Runs))
	parse("DATASET_INTERVAL", duration(&cfg.Dataset.Interval))
	parse("MODEL_CONTAMINATION", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			cfg.Model.Contamination = f
		}
		return err
	})
	parse("MODEL_SEED", func(v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			cfg.Model.Seed = n
		}
		return err
	})

	if len(errs) > 0 {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid environment override", stderrors.Join(errs...))
	}
	return nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *AuditConfig) Validate() error {
	var problems []string

	if strings.TrimSpace(c.OutputDir) == "" {
		problems = append(problems, "outputDir is empty")
	}
	if strings.TrimSpace(c.Dataset.Dir) == "" {
		problems = append(problems, "dataset.dir is empty")
	}
	if strings.TrimSpace(c.Model.Path) == "" {
		problems = append(problems, "model.path is empty")
	}
	if c.Dataset.Runs < 0 {
		problems = append(problems, "dataset.runs is negative")
	}
	if c.Dataset.Interval < 0 {
		problems = append(problems, "dataset.interval is negative")
	}
	if c.Collect.Timeout <= 0 {
		problems = append(problems, "collect.timeout must be positive")
	}
	if c.Model.Trees <= 0 {
		problems = append(problems, "model.trees must be positive")
	}
	if c.Model.MaxSamples <= 0 {
		problems = append(problems, "model.maxSamples must be positive")
	}
	if c.Model.Contamination <= 0 || c.Model.Contamination > 0.5 {
		problems = append(problems, "model.contamination must be in (0, 0.5]")
	}

	if len(problems) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid configuration: "+strings.Join(problems, "; "),
			map[string]any{"problems": problems})
	}
	return nil
}
