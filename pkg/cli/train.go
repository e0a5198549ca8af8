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

	"github.com/urfave/cli/v3"

	"github.com/hostaudit/hostaudit/pkg/anomaly"
	"github.com/hostaudit/hostaudit/pkg/config"
	"github.com/hostaudit/hostaudit/pkg/defaults"
	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/features"
)

func trainBaselineCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:                  "train-baseline",
		EnableShellCompletion: true,
		Usage:                 "Fit the isolation forest baseline on a dataset",
		Description: `Load every snapshot in the data directory (sorted by name), fit an
isolation forest over the numeric fields and save the model.

Fails when the directory is missing, holds no snapshots, or any snapshot
cannot be parsed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: fmt.Sprintf("Directory with snapshot files (default: %s)", defaults.DatasetDir),
			},
			&cli.StringFlag{
				Name:  "model-path",
				Usage: fmt.Sprintf("Where to save the model (default: %s)", defaults.ModelPath),
			},
		},
		Action: a.instrument("train-baseline", func(_ context.Context, cmd *cli.Command) error {
			dataDir := stringOr(cmd, "data-dir", a.cfg.Dataset.Dir)
			modelPath := stringOr(cmd, "model-path", a.cfg.Model.Path)

			paths, err := features.ListSnapshots(dataDir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.NewWithContext(errors.ErrCodeNotFound,
					fmt.Sprintf("no snapshots in %s", dataDir),
					map[string]any{"dir": dataDir})
			}

			table, err := features.Extract(paths, features.WithLogger(a.logger()))
			if err != nil {
				return err
			}

			model, err := anomaly.New(modelOptions(a.cfg.Model, a.logger())...).Fit(table)
			if err != nil {
				return err
			}
			if err := model.Save(modelPath); err != nil {
				return err
			}

			a.logger().Info("baseline trained",
				slog.String("model", model.ID()),
				slog.Int("samples", table.Len()),
				slog.String("path", modelPath))
			fmt.Fprintf(cmd.Root().Writer, "Model saved: %s (%d samples)\n", modelPath, table.Len())
			return nil
		}),
	}
}

func modelOptions(cfg config.ModelConfig, log *slog.Logger) []anomaly.Option {
	return []anomaly.Option{
		anomaly.WithParams(anomaly.Params{
			Trees:         cfg.Trees,
			Contamination: cfg.Contamination,
			Seed:          cfg.Seed,
			MaxSamples:    cfg.MaxSamples,
		}),
		anomaly.WithLogger(log),
		anomaly.WithVersion(version),
	}
}
