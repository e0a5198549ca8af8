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

package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// EnvVarLogLevel overrides the level when no explicit level is given.
	EnvVarLogLevel = "LOG_LEVEL"

	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// Option configures a Logger.
type Option func(*settings)

type settings struct {
	output     io.Writer
	file       string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
}

// WithOutput replaces stderr as the console destination.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.output = w
	}
}

// WithFile adds a size-rotated log file next to the console output.
// An empty path disables the file sink.
func WithFile(path string) Option {
	return func(s *settings) {
		s.file = strings.TrimSpace(path)
	}
}

// WithRotation sets the rotation limits of the file sink.
func WithRotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(s *settings) {
		if maxSizeMB > 0 {
			s.maxSizeMB = maxSizeMB
		}
		if maxBackups >= 0 {
			s.maxBackups = maxBackups
		}
		if maxAgeDays >= 0 {
			s.maxAgeDays = maxAgeDays
		}
	}
}

// Logger is a structured logger together with the sinks it owns.
// Close must be called to flush and release the rotated file, if any.
type Logger struct {
	*slog.Logger
	sink io.Closer
}

// Close releases the file sink. It is safe to call on a console-only logger.
func (l *Logger) Close() error {
	if l == nil || l.sink == nil {
		return nil
	}
	err := l.sink.Close()
	l.sink = nil
	return err
}

// NewStructuredLogger creates a JSON logger tagged with module and version.
// When level is empty the LOG_LEVEL environment variable is consulted.
func NewStructuredLogger(module, version, level string, opts ...Option) *Logger {
	s := &settings{
		output:     os.Stderr,
		maxSizeMB:  defaultMaxSizeMB,
		maxBackups: defaultMaxBackups,
		maxAgeDays: defaultMaxAgeDays,
	}
	for _, opt := range opts {
		opt(s)
	}

	if level == "" {
		level = os.Getenv(EnvVarLogLevel)
	}
	lvl := ParseLogLevel(level)

	var (
		out     = s.output
		sink    io.Closer
		fileErr error
	)
	if s.file != "" {
		if fileErr = os.MkdirAll(filepath.Dir(s.file), 0o755); fileErr == nil {
			rotator := &lumberjack.Logger{
				Filename:   s.file,
				MaxSize:    s.maxSizeMB,
				MaxBackups: s.maxBackups,
				MaxAge:     s.maxAgeDays,
			}
			out = io.MultiWriter(s.output, rotator)
			sink = rotator
		}
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})

	l := &Logger{
		Logger: slog.New(handler).With(
			slog.String("module", module),
			slog.String("version", version),
		),
		sink: sink,
	}
	if fileErr != nil {
		l.Warn("log file disabled, logging to console only",
			slog.String("file", s.file),
			slog.String("error", fileErr.Error()))
	}
	return l
}

// ParseLogLevel maps a case-insensitive level name to a slog.Level.
// Unknown or empty names map to INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
