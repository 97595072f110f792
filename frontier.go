package wikicrawl

import "context"

// URLFrontier is the queue of discovered but not yet processed URLs.
type URLFrontier interface {
	// Push appends a URL to the end of the queue.
	// Returns false if the URL is already queued.
	Push(url CanonicalURL) bool

	// Pop removes and returns the earliest pushed URL.
	// Returns false if the frontier is empty.
	Pop() (CanonicalURL, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Contains returns true if the URL is currently queued.
	Contains(url CanonicalURL) bool

	// Pending returns the queued URLs in pop order.
	Pending() []CanonicalURL
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
