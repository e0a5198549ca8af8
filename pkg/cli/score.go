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
	"path/filepath"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hostaudit/hostaudit/pkg/anomaly"
	"github.com/hostaudit/hostaudit/pkg/defaults"
	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/features"
	"github.com/hostaudit/hostaudit/pkg/header"
	"github.com/hostaudit/hostaudit/pkg/serializer"
)

// scoreReport is the output of the score command.
type scoreReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Model   string      `json:"model" yaml:"model"`
	Offset  float64     `json:"offset" yaml:"offset"`
	Samples []scoreLine `json:"samples" yaml:"samples"`
}

type scoreLine struct {
	SampleID int           `json:"sample_id" yaml:"sample_id"`
	Source   string        `json:"source" yaml:"source"`
	Score    float64       `json:"score" yaml:"score"`
	Decision float64       `json:"decision" yaml:"decision"`
	Label    anomaly.Label `json:"label" yaml:"label"`
}

// Title implements serializer.Titled.
func (r *scoreReport) Title() string {
	return "Baseline anomaly scoring"
}

// Columns implements serializer.Tabular.
func (r *scoreReport) Columns() []string {
	return []string{"sample_id", "score", "label"}
}

// Rows implements serializer.Tabular.
func (r *scoreReport) Rows() [][]string {
	rows := make([][]string, len(r.Samples))
	for i, s := range r.Samples {
		rows[i] = []string{strconv.Itoa(s.SampleID), fmt.Sprintf("%.4f", s.Score), s.Label.String()}
	}
	return rows
}

func scoreCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:                  "score",
		EnableShellCompletion: true,
		Usage:                 "Score snapshots against the baseline model",
		Description: `Score <data-dir>/system_snapshot.json (written by "audit") with the
baseline model and print sample_id, score and label for each sample.
Lower scores are more anomalous.

Use --snapshot to score a specific file, or --all to score every snapshot
in the data directory.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "model-path",
				Usage: fmt.Sprintf("Path to the saved model (default: %s)", defaults.ModelPath),
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: fmt.Sprintf("Directory with the audit snapshot (default: %s)", defaults.OutputDir),
			},
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: "Score this snapshot file instead of <data-dir>/system_snapshot.json",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Score every snapshot in the data directory",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the report to this file instead of stdout (format follows the extension unless --format is set)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(serializer.FormatTable),
				Usage:   fmt.Sprintf("Output format (supported: %v)", serializer.SupportedFormats()),
			},
		},
		Action: a.instrument("score", func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			output := cmd.String("output")
			if output != "" && output != "-" && !cmd.IsSet("format") {
				format = serializer.FormatFromPath(output)
			}
			if cmd.IsSet("snapshot") && cmd.Bool("all") {
				return errors.New(errors.ErrCodeInvalidRequest, "--snapshot and --all are mutually exclusive")
			}

			dataDir := stringOr(cmd, "data-dir", a.cfg.OutputDir)
			modelPath := stringOr(cmd, "model-path", a.cfg.Model.Path)

			var paths []string
			switch {
			case cmd.IsSet("snapshot"):
				paths = []string{cmd.String("snapshot")}
			case cmd.Bool("all"):
				paths, err = features.ListSnapshots(dataDir)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					return errors.NewWithContext(errors.ErrCodeNotFound,
						fmt.Sprintf("no snapshots in %s", dataDir),
						map[string]any{"dir": dataDir})
				}
			default:
				paths = []string{filepath.Join(dataDir, defaults.SnapshotFileName)}
			}

			table, err := features.Extract(paths, features.WithLogger(a.logger()))
			if err != nil {
				return err
			}

			model, err := anomaly.Load(modelPath, anomaly.WithLogger(a.logger()))
			if err != nil {
				return err
			}

			results, err := model.Evaluate(table)
			if err != nil {
				return err
			}

			report := &scoreReport{
				Header: *header.New(
					header.WithKind(header.KindScoreReport),
					header.WithAPIVersion(header.APIVersionV1),
					header.WithCreated(time.Now()),
					header.WithVersion(version),
				),
				Model:   model.ID(),
				Offset:  model.Offset(),
				Samples: make([]scoreLine, len(results)),
			}
			for i, r := range results {
				report.Samples[i] = scoreLine{
					SampleID: i,
					Source:   paths[i],
					Score:    r.Score,
					Decision: r.Decision,
					Label:    r.Label,
				}
			}

			w, err := serializer.NewFileWriterOrStdout(format, output, cmd.Root().Writer)
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeInternal, "failed to open report output", err,
					map[string]any{"output": output})
			}
			if err := w.Serialize(ctx, report); err != nil {
				_ = w.Close()
				return err
			}
			return w.Close()
		}),
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", format),
			map[string]any{"supported": serializer.SupportedFormats()})
	}
	return format, nil
}
