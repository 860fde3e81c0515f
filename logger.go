package voxgo

import (
	"context"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hupe1980/voxgo/model"
)

// Logger wraps slog.Logger with volume-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithVolume adds a volume name field to the logger.
func (l *Logger) WithVolume(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("volume", name),
	}
}

// LogPageIn logs a chunk fault-in through the pager.
func (l *Logger) LogPageIn(ctx context.Context, region model.Region, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "page in failed",
			"region", region.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "page in completed",
			"region", region.String(),
			"size", humanize.IBytes(uint64(bytes)),
		)
	}
}

// LogPageOut logs a chunk write-back through the pager.
func (l *Logger) LogPageOut(ctx context.Context, region model.Region, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "page out failed",
			"region", region.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "page out completed",
			"region", region.String(),
			"size", humanize.IBytes(uint64(bytes)),
		)
	}
}

// LogEviction logs the eviction of a resident chunk.
func (l *Logger) LogEviction(ctx context.Context, chunk model.Vec3, dirty bool, err error) {
	if err != nil {
		l.WarnContext(ctx, "eviction aborted",
			"chunk", chunk.String(),
			"dirty", dirty,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "chunk evicted",
			"chunk", chunk.String(),
			"dirty", dirty,
		)
	}
}

// LogFlush logs a flush of all resident chunks.
func (l *Logger) LogFlush(ctx context.Context, chunks int, residentBytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "flush failed",
			"chunks", chunks,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "flush completed",
			"chunks", chunks,
			"released", humanize.IBytes(uint64(residentBytes)),
		)
	}
}

// LogPrefetch logs a prefetch request.
func (l *Logger) LogPrefetch(ctx context.Context, region model.Region, chunks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "prefetch failed",
			"region", region.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "prefetch completed",
			"region", region.String(),
			"chunks", chunks,
		)
	}
}

// LogExtraction logs a surface extraction pass.
func (l *Logger) LogExtraction(ctx context.Context, region model.Region, vertices, triangles int) {
	l.DebugContext(ctx, "surface extracted",
		"region", region.String(),
		"vertices", vertices,
		"triangles", triangles,
	)
}
