package crawl

import (
	"github.com/fwojciec/wikicrawl"
)

// Compile-time interface verification.
var _ wikicrawl.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO queue of URLs. A URL is held at most once
// while queued; after it is popped it may be pushed again, so callers
// combine it with a VisitedSet to get at-most-once processing.
//
// Frontier is not safe for concurrent use.
type Frontier struct {
	queue  []wikicrawl.CanonicalURL
	head   int
	queued map[wikicrawl.CanonicalURL]struct{}
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		queued: make(map[wikicrawl.CanonicalURL]struct{}),
	}
}

// Push appends url to the end of the queue.
// Returns false if the URL is already queued.
func (f *Frontier) Push(url wikicrawl.CanonicalURL) bool {
	if _, ok := f.queued[url]; ok {
		return false
	}
	f.queued[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the earliest pushed URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (wikicrawl.CanonicalURL, bool) {
	if f.head == len(f.queue) {
		return "", false
	}
	url := f.queue[f.head]
	f.queue[f.head] = ""
	f.head++
	delete(f.queued, url)

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 64 && f.head*2 > len(f.queue) {
		n := copy(f.queue, f.queue[f.head:])
		f.queue = f.queue[:n]
		f.head = 0
	}
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	return len(f.queue) - f.head
}

// Contains returns true if url is currently queued.
func (f *Frontier) Contains(url wikicrawl.CanonicalURL) bool {
	_, ok := f.queued[url]
	return ok
}

// Pending returns a copy of the queued URLs in pop order.
func (f *Frontier) Pending() []wikicrawl.CanonicalURL {
	pending := make([]wikicrawl.CanonicalURL, f.Len())
	copy(pending, f.queue[f.head:])
	return pending
}
