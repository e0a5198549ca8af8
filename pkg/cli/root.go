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

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/hostaudit/hostaudit/pkg/collector"
	"github.com/hostaudit/hostaudit/pkg/config"
	"github.com/hostaudit/hostaudit/pkg/logging"
	"github.com/hostaudit/hostaudit/pkg/metrics"
)

const (
	name           = "hostaudit"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// app is the state shared by all commands of one invocation.
type app struct {
	factory   collector.Factory
	logOutput io.Writer

	cfg      *config.AuditConfig
	log      *logging.Logger
	registry *prometheus.Registry
}

func (a *app) logger() *slog.Logger {
	if a.log == nil {
		return logging.Discard()
	}
	return a.log.Logger
}

// Execute runs the CLI with os.Args and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		factory:   collector.NewDefaultFactory(),
		logOutput: os.Stderr,
	}

	if err := newRootCmd(a).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Host audit snapshots and isolation forest anomaly scoring",
		Description: `Collect point-in-time snapshots of a host, build a dataset of them,
fit an isolation forest baseline and score new snapshots against it.

  audit            - snapshot the current host
  collect-dataset  - run repeated audits into a dataset directory
  train-baseline   - fit the baseline model on a dataset
  score            - label snapshots NORMAL or ANOMALY`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file",
				Sources: cli.EnvVars(config.EnvConfig),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvVarLogLevel),
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write logs to this size-rotated file",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics in textfile format to this path on exit",
			},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			auditCmd(a),
			collectDatasetCmd(a),
			trainBaselineCmd(a),
			scoreCmd(a),
		},
	}
}

// before resolves configuration and builds the logger and metrics registry.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.Logging.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		cfg.Logging.File = cmd.String("log-file")
	}
	if cmd.IsSet("metrics-file") {
		cfg.Metrics.File = cmd.String("metrics-file")
	}
	a.cfg = cfg

	out := a.logOutput
	if out == nil {
		out = os.Stderr
	}
	a.log = logging.NewStructuredLogger(name, version, cfg.Logging.Level,
		logging.WithOutput(out),
		logging.WithFile(cfg.Logging.File),
		logging.WithRotation(cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays),
	)

	a.registry = prometheus.NewRegistry()
	if err := metrics.Register(a.registry); err != nil {
		return ctx, fmt.Errorf("failed to register metrics: %w", err)
	}

	a.log.Debug("starting",
		slog.String("name", name),
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("date", date),
		slog.String("logLevel", cfg.Logging.Level))
	return ctx, nil
}

// after exports metrics and releases the log file.
func (a *app) after(_ context.Context, _ *cli.Command) error {
	var err error
	if a.cfg != nil && a.cfg.Metrics.File != "" && a.registry != nil {
		if werr := metrics.WriteTextfile(a.registry, a.cfg.Metrics.File); werr != nil {
			a.logger().Error("failed to write metrics", slog.String("error", werr.Error()))
			err = werr
		}
	}
	if a.log != nil {
		if cerr := a.log.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// instrument records the command outcome in metrics and logs failures.
func (a *app) instrument(command string, action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		err := action(ctx, cmd)
		metrics.ObserveCommand(command, err)
		if err != nil {
			a.logger().Error("command failed",
				slog.String("command", command),
				slog.String("error", err.Error()))
		}
		return err
	}
}

// stringOr returns the flag value when set explicitly, fallback otherwise.
func stringOr(cmd *cli.Command, flag, fallback string) string {
	if cmd.IsSet(flag) {
		return cmd.String(flag)
	}
	return fallback
}
