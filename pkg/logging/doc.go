// Package logging provides structured logging utilities for hostaudit components.
//
// # Overview
//
// This package wraps the standard library slog package with hostaudit defaults:
// JSON records on stderr, module/version attributes on every record, and an
// optional size-rotated log file. Loggers are constructed once at process start
// and passed to the components that need them; nothing in this package mutates
// the slog default logger.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages, e.g. a host facility that could not be queried
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	logger := logging.NewStructuredLogger("hostaudit", version, "info",
//	    logging.WithFile("artifacts/logs/hostaudit.log"),
//	)
//	defer logger.Close()
//
//	c := collector.NewHostCollector(collector.WithLogger(logger.Logger))
//
// # Environment Configuration
//
// When no explicit level is given, LOG_LEVEL controls verbosity:
//
//	LOG_LEVEL=debug hostaudit audit system
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "snapshot saved",
//	    "module": "hostaudit",
//	    "version": "v1.0.0",
//	    "path": "artifacts/system_snapshot.json"
//	}
package logging
