package crawl

import "github.com/fwojciec/wikicrawl"

// Outcome is the result of processing a single URL.
type Outcome int

const (
	// OutcomeWritten means the page was fetched, extracted and written.
	OutcomeWritten Outcome = iota + 1
	// OutcomeSkippedError means fetching or extraction failed; the URL is
	// permanently skipped.
	OutcomeSkippedError
	// OutcomeSkippedDuplicate means the URL, or with content dedupe the
	// page body, was already processed.
	OutcomeSkippedDuplicate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkippedError:
		return "skipped-error"
	case OutcomeSkippedDuplicate:
		return "skipped-duplicate"
	default:
		return "unknown"
	}
}

// StopReason explains why a run ended.
type StopReason int

const (
	// StopExhausted means the frontier ran empty.
	StopExhausted StopReason = iota + 1
	// StopCapReached means MaxFiles pages have been written.
	StopCapReached
	// StopCanceled means the context was canceled.
	StopCanceled
	// StopWriteFailed means the writer or the ledger failed.
	StopWriteFailed
)

func (r StopReason) String() string {
	switch r {
	case StopExhausted:
		return "frontier exhausted"
	case StopCapReached:
		return "file limit reached"
	case StopCanceled:
		return "canceled"
	case StopWriteFailed:
		return "write failed"
	default:
		return "unknown"
	}
}

// ProgressEvent reports the outcome of one processed URL.
type ProgressEvent struct {
	Outcome Outcome
	URL     wikicrawl.CanonicalURL

	// Sequence and File are set for OutcomeWritten.
	Sequence int
	File     string
	Title    string

	// Error is set for OutcomeSkippedError.
	Error error

	// Queued is the number of new URLs added to the frontier.
	Queued int

	// Pending is the frontier size after the URL was processed.
	Pending int
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)
