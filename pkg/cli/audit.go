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
	"path/filepath"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hostaudit/hostaudit/pkg/collector"
	"github.com/hostaudit/hostaudit/pkg/config"
	"github.com/hostaudit/hostaudit/pkg/defaults"
	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/metrics"
	"github.com/hostaudit/hostaudit/pkg/snapshot"
)

// targetSystem is the only supported audit target.
const targetSystem = "system"

func auditCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:                  "audit",
		EnableShellCompletion: true,
		Usage:                 "Snapshot the current host",
		ArgsUsage:             "[target]",
		Description: `Collect a snapshot of the current host and write it as JSON to
<output-dir>/system_snapshot.json. The only supported target is "system".

Facilities that cannot be read (for example the connection table without
sufficient privileges) are reported as zero.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("Directory for audit artifacts (default: %s)", defaults.OutputDir),
			},
		},
		Action: a.instrument("audit", func(ctx context.Context, cmd *cli.Command) error {
			target := targetSystem
			switch cmd.Args().Len() {
			case 0:
			case 1:
				target = cmd.Args().First()
			default:
				return errors.New(errors.ErrCodeInvalidRequest, "audit takes at most one target")
			}
			if target != targetSystem {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("unsupported audit target %q, only %q is supported", target, targetSystem),
					map[string]any{"target": target})
			}

			outDir := stringOr(cmd, "output-dir", a.cfg.OutputDir)
			path := filepath.Join(outDir, defaults.SnapshotFileName)

			rec, err := a.runAudit(ctx, path)
			if err != nil {
				return err
			}

			p := message.NewPrinter(language.English)
			w := cmd.Root().Writer
			p.Fprintf(w, "System audit\n")
			for _, f := range rec.Fields() {
				p.Fprintf(w, "  %-20s %v\n", f.Key, f.Value)
			}
			p.Fprintf(w, "Audit complete. JSON: %s\n", path)
			return nil
		}),
	}
}

// collectorOptions maps the collect config onto collector options.
func collectorOptions(cfg config.CollectConfig, log *slog.Logger) []collector.Option {
	return []collector.Option{
		collector.WithLogger(log),
		collector.WithSystemInfo(cfg.SystemInfo),
		collector.WithProcesses(cfg.Processes),
		collector.WithNetwork(cfg.Network),
	}
}

// runAudit collects one snapshot within the configured timeout and saves it.
func (a *app) runAudit(ctx context.Context, path string) (*snapshot.Record, error) {
	runID := uuid.NewString()
	log := a.logger().With(slog.String("run", runID))

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Collect.Timeout)
	defer cancel()

	c := a.factory.CreateHostCollector(collectorOptions(a.cfg.Collect, log)...)
	rec, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}

	if err := snapshot.Save(*rec, path); err != nil {
		return nil, err
	}
	metrics.SnapshotWritten()

	log.Info("snapshot saved", slog.String("path", path))
	return rec, nil
}
