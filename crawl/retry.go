package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// BackoffDelays returns n retry delays doubling from one second: 1s, 2s, 4s...
func BackoffDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	d := time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays attempts to fetch a URL, retrying after each delay
// in delays. The logger function, if provided, is called for each retry
// attempt. The last error is returned when all attempts fail.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

var _ wikicrawl.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher wraps a Fetcher and retries failed fetches of a single URL.
// The engine still sees one fetch per URL: a URL that fails every attempt is
// skipped and never fetched again in the run.
type RetryFetcher struct {
	next   wikicrawl.Fetcher
	delays []time.Duration
	logger LogFunc
}

// NewRetryFetcher creates a RetryFetcher. logger may be nil.
func NewRetryFetcher(next wikicrawl.Fetcher, delays []time.Duration, logger LogFunc) *RetryFetcher {
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch delegates to the wrapped fetcher, retrying on failure.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return FetchWithRetryDelays(ctx, url, f.next.Fetch, f.logger, f.delays)
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
