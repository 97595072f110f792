package wikicrawl

import "context"

// LedgerState is the persisted progress of a crawl.
type LedgerState struct {
	// Visited holds every URL that was processed, whether written or
	// permanently skipped, in processing order.
	Visited []CanonicalURL

	// NextSequence is the sequence number the next written page receives.
	NextSequence int

	// Frontier holds the URLs queued at the last flush, in pop order.
	Frontier []CanonicalURL
}

// Ledger records visited URLs and the output sequence counter so that a run
// can resume where an earlier one stopped.
type Ledger interface {
	// Load returns the persisted state. A ledger that was never flushed
	// returns an empty state with NextSequence 1.
	Load(ctx context.Context) (*LedgerState, error)

	// Record marks url as visited. Recording a URL twice is a no-op.
	Record(url CanonicalURL)

	// AdvanceSequence increments the sequence counter and returns the new
	// value.
	AdvanceSequence() int

	// SetFrontier replaces the queued URLs stored with the next flush.
	SetFrontier(urls []CanonicalURL)

	// Flush durably persists everything recorded so far.
	// It is safe to call after every processed page.
	Flush(ctx context.Context) error

	// Close releases resources held by the ledger.
	Close() error
}
