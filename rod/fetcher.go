// Package rod provides a headless Chrome implementation of wikicrawl.Fetcher
// for wikis that render their content with JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/wikicrawl"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default timeout for loading a single page.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements wikicrawl.Fetcher at compile time.
var _ wikicrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager  *BrowserManager
	timeout  time.Duration
	maxPages int64
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for loading a page.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBrowserRecycling sets the number of pages after which the browser is
// restarted. Defaults to DefaultMaxPages.
func WithBrowserRecycling(pages int64) Option {
	return func(f *Fetcher) {
		if pages > 0 {
			f.maxPages = pages
		}
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, wikicrawl.WrapError(wikicrawl.ECONFIG, err, "start browser")
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. A document
// response other than 200 is returned as an EFETCH error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", wikicrawl.Errorf(wikicrawl.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EFETCH, err, "open page for %s", url)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	var status int
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EFETCH, err, "navigate to %s", url)
	}
	waitResponse()
	if err := ctx.Err(); err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EFETCH, err, "load %s", url)
	}
	if status != 200 {
		return "", wikicrawl.Errorf(wikicrawl.EFETCH, "HTTP %d for %s", status, url)
	}

	if err := page.WaitLoad(); err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EFETCH, err, "load %s", url)
	}

	html, err := page.HTML()
	if err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EFETCH, err, "read HTML of %s", url)
	}

	return html, nil
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}
