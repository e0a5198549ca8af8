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
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hostaudit/hostaudit/pkg/defaults"
	"github.com/hostaudit/hostaudit/pkg/errors"
	"github.com/hostaudit/hostaudit/pkg/logging"
	"github.com/hostaudit/hostaudit/pkg/metrics"
	"github.com/hostaudit/hostaudit/pkg/snapshot"
)

// Facility names used in logs and metrics.
const (
	FacilityPlatform    = "platform"
	FacilityCPU         = "cpu"
	FacilityMemory      = "memory"
	FacilityProcesses   = "processes"
	FacilityDisks       = "disks"
	FacilityInterfaces  = "interfaces"
	FacilityConnections = "connections"
)

// Collector returns a snapshot of the current host.
type Collector interface {
	Collect(ctx context.Context) (*snapshot.Record, error)
}

// Options selects which facilities are queried.
type Options struct {
	// SystemInfo covers platform, CPU and memory.
	SystemInfo bool
	// Processes covers the process count.
	Processes bool
	// Network covers interfaces and TCP/UDP connections.
	Network bool
	// ConnectionsTimeout bounds the connection table walk.
	ConnectionsTimeout time.Duration
}

// DefaultOptions enables every facility.
func DefaultOptions() Options {
	return Options{
		SystemInfo:         true,
		Processes:          true,
		Network:            true,
		ConnectionsTimeout: defaults.CollectorConnectionsTimeout,
	}
}

// HostCollector builds a snapshot.Record from a Provider.
type HostCollector struct {
	Provider Provider
	Logger   *slog.Logger
	Options  Options
}

// Option configures a HostCollector.
type Option func(*HostCollector)

// WithProvider sets the operating system source.
func WithProvider(p Provider) Option {
	return func(c *HostCollector) {
		c.Provider = p
	}
}

// WithLogger sets the logger for facility warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *HostCollector) {
		c.Logger = l
	}
}

// WithSystemInfo toggles the platform, CPU and memory facilities.
func WithSystemInfo(enabled bool) Option {
	return func(c *HostCollector) {
		c.Options.SystemInfo = enabled
	}
}

// WithProcesses toggles the process facility.
func WithProcesses(enabled bool) Option {
	return func(c *HostCollector) {
		c.Options.Processes = enabled
	}
}

// WithNetwork toggles the interface and connection facilities.
func WithNetwork(enabled bool) Option {
	return func(c *HostCollector) {
		c.Options.Network = enabled
	}
}

// WithConnectionsTimeout bounds the connection table walk.
// Non-positive values leave only the caller's deadline.
func WithConnectionsTimeout(d time.Duration) Option {
	return func(c *HostCollector) {
		c.Options.ConnectionsTimeout = d
	}
}

// NewHostCollector returns a collector with every facility enabled and the
// gopsutil provider unless overridden.
func NewHostCollector(opts ...Option) *HostCollector {
	c := &HostCollector{
		Options: DefaultOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Provider == nil {
		c.Provider = NewGopsutilProvider()
	}
	return c
}

// Collect queries every enabled facility concurrently and assembles a record.
// Facility failures leave the fields they could not read zero; only ctx
// cancellation or expiry is returned as an error.
func (c *HostCollector) Collect(ctx context.Context) (rec *snapshot.Record, err error) {
	log := logging.OrDiscard(c.Logger)
	start := time.Now()
	defer func() {
		metrics.ObserveCollection(time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "collection canceled", err)
	}

	provider := c.Provider
	if provider == nil {
		provider = NewGopsutilProvider()
	}

	var r snapshot.Record
	g, gctx := errgroup.WithContext(ctx)

	// run executes one facility query. Each query writes distinct record
	// fields, so no lock is needed before Wait returns.
	run := func(facility string, fn func(context.Context) error) {
		g.Go(func() error {
			facilityStart := time.Now()
			ferr := fn(gctx)
			if ferr == nil {
				log.Debug("facility collected",
					slog.String("facility", facility),
					slog.Duration("duration", time.Since(facilityStart)))
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			metrics.FacilityFailed(facility)
			log.Warn("facility unavailable, reporting zero",
				slog.String("facility", facility),
				slog.String("error", ferr.Error()))
			return nil
		})
	}

	if c.Options.SystemInfo {
		run(FacilityPlatform, func(ctx context.Context) error {
			p, err := provider.PlatformInfo(ctx)
			r.PlatformSystem, r.PlatformRelease, r.PlatformVersion = p.System, p.Release, p.Version
			return err
		})
		run(FacilityCPU, func(ctx context.Context) error {
			logical, physical, err := provider.CPUCounts(ctx)
			r.CPUCountLogical, r.CPUCountPhysical = logical, physical
			return err
		})
		run(FacilityMemory, func(ctx context.Context) error {
			return assign(&r.MemoryTotal)(provider.MemoryTotal(ctx))
		})
		run(FacilityDisks, func(ctx context.Context) error {
			return assign(&r.DiskCount)(provider.DiskPartitionCount(ctx))
		})
	}

	if c.Options.Processes {
		run(FacilityProcesses, func(ctx context.Context) error {
			return assign(&r.ProcessesCount)(provider.ProcessCount(ctx))
		})
	}

	if c.Options.Network {
		run(FacilityInterfaces, func(ctx context.Context) error {
			return assign(&r.NetIfCount)(provider.NetInterfaceCount(ctx))
		})
		run(FacilityConnections, func(ctx context.Context) error {
			if c.Options.ConnectionsTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, c.Options.ConnectionsTimeout)
				defer cancel()
			}
			tcp, udp, err := provider.ConnectionCounts(ctx)
			r.TCPConnCount, r.UDPConnCount = tcp, udp
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "collection canceled", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "collection canceled", err)
	}

	log.Debug("host snapshot collected",
		slog.Uint64(snapshot.KeyProcessesCount, r.ProcessesCount),
		slog.Uint64(snapshot.KeyTCPConnCount, r.TCPConnCount),
		slog.Duration("duration", time.Since(start)))

	return &r, nil
}

// assign stores a count only when the query succeeded.
func assign(dst *uint64) func(uint64, error) error {
	return func(n uint64, err error) error {
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}
