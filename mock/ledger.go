package mock

import (
	"context"

	"github.com/fwojciec/wikicrawl"
)

var _ wikicrawl.Ledger = (*Ledger)(nil)

// Ledger is a mock implementation of wikicrawl.Ledger.
type Ledger struct {
	LoadFn            func(ctx context.Context) (*wikicrawl.LedgerState, error)
	RecordFn          func(url wikicrawl.CanonicalURL)
	AdvanceSequenceFn func() int
	SetFrontierFn     func(urls []wikicrawl.CanonicalURL)
	FlushFn           func(ctx context.Context) error
	CloseFn           func() error
}

func (l *Ledger) Load(ctx context.Context) (*wikicrawl.LedgerState, error) {
	return l.LoadFn(ctx)
}

func (l *Ledger) Record(url wikicrawl.CanonicalURL) {
	l.RecordFn(url)
}

func (l *Ledger) AdvanceSequence() int {
	return l.AdvanceSequenceFn()
}

func (l *Ledger) SetFrontier(urls []wikicrawl.CanonicalURL) {
	l.SetFrontierFn(urls)
}

func (l *Ledger) Flush(ctx context.Context) error {
	return l.FlushFn(ctx)
}

func (l *Ledger) Close() error {
	return l.CloseFn()
}
