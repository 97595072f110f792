package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// Ensure Ledger implements wikicrawl.Ledger at compile time.
var _ wikicrawl.Ledger = (*Ledger)(nil)

// ledgerFile is the on-disk layout of a Ledger.
type ledgerFile struct {
	Visited      []wikicrawl.CanonicalURL `json:"visited"`
	NextSequence int                      `json:"next_sequence"`
	Frontier     []wikicrawl.CanonicalURL `json:"frontier"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// Ledger stores crawl progress in a JSON file. Changes are kept in memory
// until Flush, which replaces the file atomically.
type Ledger struct {
	path string

	mu      sync.Mutex
	state   ledgerFile
	visited map[wikicrawl.CanonicalURL]struct{}

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewLedger returns a Ledger stored at path.
func NewLedger(path string) *Ledger {
	return &Ledger{
		path:    path,
		state:   ledgerFile{NextSequence: 1},
		visited: make(map[wikicrawl.CanonicalURL]struct{}),
		Now:     time.Now,
	}
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// Load reads the ledger file. A missing file yields a fresh state.
// Loading discards any unflushed changes.
func (l *Ledger) Load(ctx context.Context) (*wikicrawl.LedgerState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file := ledgerFile{NextSequence: 1}
	data, err := os.ReadFile(l.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, wikicrawl.WrapError(wikicrawl.EINVALID, err, "corrupt ledger %s", l.path)
		}
	}

	state, err := decodeState(file)
	if err != nil {
		return nil, wikicrawl.WrapError(wikicrawl.EINVALID, err, "corrupt ledger %s", l.path)
	}

	l.state = ledgerFile{
		Visited:      state.Visited,
		NextSequence: state.NextSequence,
		Frontier:     state.Frontier,
		UpdatedAt:    file.UpdatedAt,
	}
	l.visited = make(map[wikicrawl.CanonicalURL]struct{}, len(state.Visited))
	for _, u := range state.Visited {
		l.visited[u] = struct{}{}
	}

	return &wikicrawl.LedgerState{
		Visited:      slices.Clone(state.Visited),
		NextSequence: state.NextSequence,
		Frontier:     slices.Clone(state.Frontier),
	}, nil
}

// decodeState re-canonicalizes stored URLs so that a hand-edited ledger
// cannot introduce non-canonical entries.
func decodeState(file ledgerFile) (*wikicrawl.LedgerState, error) {
	state := &wikicrawl.LedgerState{NextSequence: max(file.NextSequence, 1)}

	visited := wikicrawl.NewLinkSet()
	for _, raw := range file.Visited {
		u, err := wikicrawl.Canonicalize(string(raw))
		if err != nil {
			return nil, err
		}
		visited.Add(u)
	}
	frontier := wikicrawl.NewLinkSet()
	for _, raw := range file.Frontier {
		u, err := wikicrawl.Canonicalize(string(raw))
		if err != nil {
			return nil, err
		}
		if !visited.Contains(u) {
			frontier.Add(u)
		}
	}

	state.Visited = visited.URLs()
	state.Frontier = frontier.URLs()
	return state, nil
}

// Record marks url as visited.
func (l *Ledger) Record(url wikicrawl.CanonicalURL) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.visited[url]; ok {
		return
	}
	l.visited[url] = struct{}{}
	l.state.Visited = append(l.state.Visited, url)
}

// AdvanceSequence increments the sequence counter and returns the new value.
func (l *Ledger) AdvanceSequence() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.NextSequence++
	return l.state.NextSequence
}

// SetFrontier replaces the stored frontier.
func (l *Ledger) SetFrontier(urls []wikicrawl.CanonicalURL) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.Frontier = slices.Clone(urls)
}

// Flush writes the ledger to a temporary file and renames it over the
// ledger file.
func (l *Ledger) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	l.state.UpdatedAt = l.Now().UTC()
	file := l.state
	if file.Visited == nil {
		file.Visited = []wikicrawl.CanonicalURL{}
	}
	if file.Frontier == nil {
		file.Frontier = []wikicrawl.CanonicalURL{}
	}
	data, err := json.MarshalIndent(file, "", "  ")
	l.mu.Unlock()
	if err != nil {
		return err
	}

	if err := writeFileAtomic(l.path, append(data, '\n')); err != nil {
		return wikicrawl.WrapError(wikicrawl.EWRITE, err, "write ledger %s", l.path)
	}
	return nil
}

// Close is a no-op; the ledger holds no open files between flushes.
func (l *Ledger) Close() error {
	return nil
}
