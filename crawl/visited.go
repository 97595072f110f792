package crawl

import (
	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/bloom"
)

// Visited set sizing.
const (
	// visitedExpectedURLs is the minimum expected number of URLs for Bloom filter sizing.
	visitedExpectedURLs = 10000
	// visitedFalsePositiveRate is the acceptable false positive rate of the fast path.
	visitedFalsePositiveRate = 0.01
)

// VisitedSet is the in-memory working copy of the visited URLs. It only
// grows. Membership is decided by the exact set; the Bloom filter only
// short-circuits negative lookups and never changes an answer.
type VisitedSet struct {
	filter *bloom.Filter
	urls   map[wikicrawl.CanonicalURL]struct{}
}

// NewVisitedSet creates a VisitedSet sized for n expected URLs.
func NewVisitedSet(n int) *VisitedSet {
	expected := uint(visitedExpectedURLs)
	if n > 0 && uint(n) > expected {
		expected = uint(n)
	}
	return &VisitedSet{
		filter: bloom.NewFilter(expected, visitedFalsePositiveRate),
		urls:   make(map[wikicrawl.CanonicalURL]struct{}, n),
	}
}

// Add marks url as visited. Returns false if it already was.
func (s *VisitedSet) Add(url wikicrawl.CanonicalURL) bool {
	if s.Contains(url) {
		return false
	}
	s.filter.Add(string(url))
	s.urls[url] = struct{}{}
	return true
}

// Contains returns true if url has been visited.
func (s *VisitedSet) Contains(url wikicrawl.CanonicalURL) bool {
	if !s.filter.Test(string(url)) {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (s *VisitedSet) Len() int {
	return len(s.urls)
}
