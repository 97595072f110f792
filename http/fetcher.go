// Package http provides an HTTP-based implementation of wikicrawl.Fetcher
// for wikis that serve complete HTML without JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/wikicrawl"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the crawler to the wiki operators.
const DefaultUserAgent = "wikicrawl/1.0"

// MaxBodySize is the largest response body read, in bytes.
const MaxBodySize = 16 << 20

// Ensure Fetcher implements wikicrawl.Fetcher at compile time.
var _ wikicrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Transport errors,
// non-200 responses and bodies that are not valid UTF-8 are returned with
// code EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EFETCH, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EFETCH, err, "request %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", wikicrawl.Errorf(wikicrawl.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EFETCH, err, "read body of %s", url)
	}
	if len(body) > MaxBodySize {
		return "", wikicrawl.Errorf(wikicrawl.EFETCH, "body of %s exceeds %d bytes", url, MaxBodySize)
	}
	if !utf8.Valid(body) {
		return "", wikicrawl.Errorf(wikicrawl.EFETCH, "body of %s is not valid UTF-8", url)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
