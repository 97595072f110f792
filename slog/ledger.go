package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// Ensure LoggingLedger implements wikicrawl.Ledger.
var _ wikicrawl.Ledger = (*LoggingLedger)(nil)

// LoggingLedger wraps a Ledger with debug logging of loads and flushes.
// Record, AdvanceSequence and SetFrontier are called for every page and
// are not logged.
type LoggingLedger struct {
	next   wikicrawl.Ledger
	logger *slog.Logger
}

// NewLoggingLedger creates a new LoggingLedger.
func NewLoggingLedger(next wikicrawl.Ledger, logger *slog.Logger) *LoggingLedger {
	return &LoggingLedger{next: next, logger: logger}
}

// Load delegates to the wrapped ledger and logs the loaded state.
func (l *LoggingLedger) Load(ctx context.Context) (state *wikicrawl.LedgerState, err error) {
	defer func(begin time.Time) {
		var visited, frontier, sequence int
		if state != nil {
			visited = len(state.Visited)
			frontier = len(state.Frontier)
			sequence = state.NextSequence
		}
		l.logger.Info("ledger load",
			"visited", visited,
			"frontier", frontier,
			"next_sequence", sequence,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx)
}

// Record delegates to the wrapped ledger.
func (l *LoggingLedger) Record(url wikicrawl.CanonicalURL) {
	l.next.Record(url)
}

// AdvanceSequence delegates to the wrapped ledger.
func (l *LoggingLedger) AdvanceSequence() int {
	return l.next.AdvanceSequence()
}

// SetFrontier delegates to the wrapped ledger.
func (l *LoggingLedger) SetFrontier(urls []wikicrawl.CanonicalURL) {
	l.next.SetFrontier(urls)
}

// Flush delegates to the wrapped ledger and logs failures. Successful
// flushes are logged at debug level.
func (l *LoggingLedger) Flush(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		l.logger.Log(ctx, level, "ledger flush",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Flush(ctx)
}

// Close delegates to the wrapped ledger.
func (l *LoggingLedger) Close() error {
	return l.next.Close()
}
