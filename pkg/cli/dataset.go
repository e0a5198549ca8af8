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
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/hostaudit/hostaudit/pkg/defaults"
	"github.com/hostaudit/hostaudit/pkg/errors"
)

func collectDatasetCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:                  "collect-dataset",
		EnableShellCompletion: true,
		Usage:                 "Run repeated audits into a dataset directory",
		Description: `Run the system audit --runs times and write each snapshot to its own
numbered file (system_snapshot_0000.json, system_snapshot_0001.json, ...)
in the dataset directory. Existing files with the same names are replaced.

Use --interval to space the audits out, e.g. --runs 60 --interval 1m.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "runs",
				Usage: fmt.Sprintf("Number of audits to run (default: %d)", defaults.DatasetRuns),
			},
			&cli.StringFlag{
				Name:  "dataset-dir",
				Usage: fmt.Sprintf("Directory for the dataset snapshots (default: %s)", defaults.DatasetDir),
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Minimum time between audits (default: back-to-back)",
			},
		},
		Action: a.instrument("collect-dataset", func(ctx context.Context, cmd *cli.Command) error {
			runs := a.cfg.Dataset.Runs
			if cmd.IsSet("runs") {
				runs = cmd.Int("runs")
			}
			interval := a.cfg.Dataset.Interval
			if cmd.IsSet("interval") {
				interval = cmd.Duration("interval")
			}
			dir := stringOr(cmd, "dataset-dir", a.cfg.Dataset.Dir)

			if runs < 0 {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest, "runs must not be negative",
					map[string]any{"runs": runs})
			}
			if interval < 0 {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest, "interval must not be negative",
					map[string]any{"interval": interval.String()})
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.WrapWithContext(errors.ErrCodeInternal, "failed to create dataset directory", err,
					map[string]any{"dir": dir})
			}

			limit := rate.Inf
			if interval > 0 {
				limit = rate.Every(interval)
			}
			limiter := rate.NewLimiter(limit, 1)

			w := cmd.Root().Writer
			fmt.Fprintf(w, "Dataset collection: %d runs into %s\n", runs, dir)
			for i := range runs {
				if err := limiter.Wait(ctx); err != nil {
					return errors.Wrap(errors.ErrCodeUnavailable, "dataset collection interrupted", err)
				}

				path := filepath.Join(dir, fmt.Sprintf(defaults.DatasetFilePattern, i))
				if _, err := a.runAudit(ctx, path); err != nil {
					return err
				}
				fmt.Fprintf(w, "Sample #%d: %s\n", i, path)
			}

			a.logger().Info("dataset collected",
				slog.String("dir", dir),
				slog.Int("runs", runs))
			return nil
		}),
	}
}
