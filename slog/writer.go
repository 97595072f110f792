package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// Ensure LoggingWriter implements wikicrawl.Writer.
var _ wikicrawl.Writer = (*LoggingWriter)(nil)

// LoggingWriter wraps a Writer with debug logging.
type LoggingWriter struct {
	next   wikicrawl.Writer
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next wikicrawl.Writer, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// Write delegates to the wrapped writer and logs the written file.
func (w *LoggingWriter) Write(ctx context.Context, unit *wikicrawl.Unit) (id string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"sequence", unit.Sequence,
			"url", unit.URL,
			"file", id,
			"bytes", len(unit.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Write(ctx, unit)
}
