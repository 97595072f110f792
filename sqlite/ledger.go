package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/wikicrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wikicrawl.Ledger = (*Ledger)(nil)

// metaNextSequence is the meta key of the sequence counter.
const metaNextSequence = "next_sequence"

// Run describes one crawl run that flushed to the ledger.
type Run struct {
	ID        string
	StartedAt time.Time
	UpdatedAt time.Time

	// Visited is the number of URLs first recorded by this run.
	Visited int
}

// Ledger implements wikicrawl.Ledger using SQLite. Changes are buffered in
// memory and written in a single transaction on Flush. Every Ledger tags
// the URLs it records with its own run ID.
type Ledger struct {
	db    *DB
	runID string

	mu        sync.Mutex
	visited   map[wikicrawl.CanonicalURL]struct{}
	pending   []wikicrawl.CanonicalURL
	position  int
	sequence  int
	frontier  []wikicrawl.CanonicalURL
	startedAt time.Time

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewLedger creates a new Ledger on an open DB. The ledger takes ownership
// of the DB and closes it on Close.
func NewLedger(db *DB) *Ledger {
	return &Ledger{
		db:       db,
		runID:    uuid.New().String(),
		visited:  make(map[wikicrawl.CanonicalURL]struct{}),
		sequence: 1,
		Now:      time.Now,
	}
}

// RunID returns the identifier of the current run.
func (l *Ledger) RunID() string {
	return l.runID
}

// Load reads the persisted state and discards unflushed changes.
func (l *Ledger) Load(ctx context.Context) (*wikicrawl.LedgerState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	visited, err := l.queryURLs(ctx, `SELECT url FROM visited ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load visited: %w", err)
	}
	frontier, err := l.queryURLs(ctx, `SELECT url FROM frontier ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load frontier: %w", err)
	}

	sequence := 1
	err = l.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaNextSequence).Scan(&sequence)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load sequence: %w", err)
	}

	var position sql.NullInt64
	if err := l.db.QueryRowContext(ctx, `SELECT MAX(position) FROM visited`).Scan(&position); err != nil {
		return nil, fmt.Errorf("failed to load position: %w", err)
	}

	l.visited = make(map[wikicrawl.CanonicalURL]struct{}, len(visited))
	for _, u := range visited {
		l.visited[u] = struct{}{}
	}
	l.pending = nil
	l.position = int(position.Int64)
	l.sequence = max(sequence, 1)
	l.frontier = frontier

	return &wikicrawl.LedgerState{
		Visited:      visited,
		NextSequence: l.sequence,
		Frontier:     slices.Clone(frontier),
	}, nil
}

func (l *Ledger) queryURLs(ctx context.Context, query string) ([]wikicrawl.CanonicalURL, error) {
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []wikicrawl.CanonicalURL
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, wikicrawl.CanonicalURL(u))
	}
	return urls, rows.Err()
}

// Record marks url as visited.
func (l *Ledger) Record(url wikicrawl.CanonicalURL) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.visited[url]; ok {
		return
	}
	l.visited[url] = struct{}{}
	l.pending = append(l.pending, url)
}

// AdvanceSequence increments the sequence counter and returns the new value.
func (l *Ledger) AdvanceSequence() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sequence++
	return l.sequence
}

// SetFrontier replaces the stored frontier.
func (l *Ledger) SetFrontier(urls []wikicrawl.CanonicalURL) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.frontier = slices.Clone(urls)
}

// Flush writes buffered changes in one transaction.
func (l *Ledger) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.flush(ctx); err != nil {
		return wikicrawl.WrapError(wikicrawl.EWRITE, err, "flush ledger")
	}
	return nil
}

func (l *Ledger) flush(ctx context.Context) error {
	now := formatTime(l.Now())
	if l.startedAt.IsZero() {
		l.startedAt = l.Now()
	}

	tx, err := l.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
	`, l.runID, formatTime(l.startedAt), now); err != nil {
		return err
	}

	position := l.position
	for _, u := range l.pending {
		position++
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO visited (url, position, run_id, visited_at) VALUES (?, ?, ?, ?)
		`, string(u), position, l.runID, now); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaNextSequence, l.sequence); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM frontier`); err != nil {
		return err
	}
	for i, u := range l.frontier {
		if _, err := tx.ExecContext(ctx, `INSERT INTO frontier (position, url) VALUES (?, ?)`, i, string(u)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	l.position = position
	l.pending = nil
	return nil
}

// Runs returns the runs recorded in the ledger, oldest first.
func (l *Ledger) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT r.id, r.started_at, r.updated_at, COUNT(v.url)
		FROM runs r
		LEFT JOIN visited v ON v.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at, r.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var startedAt, updatedAt string
		if err := rows.Scan(&run.ID, &startedAt, &updatedAt, &run.Visited); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
