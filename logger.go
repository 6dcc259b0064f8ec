package renderstream

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with tracker-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithManager tags the logger with the manager kind ("static" or "dynamic").
func (l *Logger) WithManager(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("manager", kind),
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(id ComponentID) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", uint64(id)),
	}
}

// WithAsset adds an asset field to the logger.
func (l *Logger) WithAsset(id AssetID) *Logger {
	return &Logger{
		Logger: l.Logger.With("asset", uint64(id)),
	}
}

// LogAdd logs a component add.
func (l *Logger) LogAdd(id ComponentID, result AddResult, elements int) {
	if result != AddSuccess {
		l.Debug("add rejected",
			"component", uint64(id),
			"result", result.String(),
		)
		return
	}
	l.Debug("add completed",
		"component", uint64(id),
		"elements", elements,
	)
}

// LogBatchAdd logs a batch add.
func (l *Logger) LogBatchAdd(count, failed int, duration time.Duration) {
	if failed > 0 {
		l.Warn("batch add completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
			"duration", duration,
		)
	} else {
		l.Info("batch add completed",
			"count", count,
			"duration", duration,
		)
	}
}

// LogRemove logs a component removal. detached is true when reclamation
// was deferred to the next flush.
func (l *Logger) LogRemove(id ComponentID, detached bool, unreferenced []AssetID) {
	l.Debug("remove completed",
		"component", uint64(id),
		"deferred", detached,
		"unreferenced_assets", len(unreferenced),
	)
}

// LogCompile logs an element compilation.
func (l *Logger) LogCompile(assets, elements int, duration time.Duration) {
	l.Debug("compile completed",
		"assets", assets,
		"elements", elements,
		"duration", duration,
	)
}

// LogTrim logs a bounds trim or defragmentation.
func (l *Logger) LogTrim(moved, releasedLanes, lanes int) {
	if moved == 0 && releasedLanes == 0 {
		return
	}
	l.Info("bounds compacted",
		"moved", moved,
		"released_lanes", releasedLanes,
		"lanes", lanes,
	)
}

// LogRefresh logs a per-frame bounds refresh.
func (l *Logger) LogRefresh(updated, skipped int) {
	if skipped > 0 {
		l.Debug("bounds refresh skipped incoherent slots",
			"updated", updated,
			"skipped", skipped,
		)
	}
}

// LogReport logs a diagnostic report write or read.
func (l *Logger) LogReport(op string, assets int, err error) {
	if err != nil {
		l.Error("report "+op+" failed",
			"assets", assets,
			"error", err,
		)
		return
	}
	l.Info("report "+op+" completed",
		"assets", assets,
	)
}
