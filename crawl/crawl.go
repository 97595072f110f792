// Package crawl provides the traversal engine. It drives the
// fetch, extract, write and enqueue loop over a breadth-first frontier,
// keeps the visited ledger current, and enforces the output file limit.
package crawl

import (
	"context"
	"errors"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikicrawl"
)

// Config holds the crawl parameters. It is read once at the start of a run.
type Config struct {
	// MaxFiles is the maximum number of pages written, across resumed runs.
	MaxFiles int

	// StartURLs are the seed pages, in the order they are queued.
	StartURLs []string
}

// Validate returns an ECONFIG error if the configuration cannot be crawled.
func (c Config) Validate() error {
	_, err := c.Seeds()
	return err
}

// Seeds returns the canonical start URLs with blanks and duplicates removed,
// preserving the configured order.
func (c Config) Seeds() ([]wikicrawl.CanonicalURL, error) {
	if c.MaxFiles < 1 {
		return nil, wikicrawl.Errorf(wikicrawl.ECONFIG, "max files must be positive, got %d", c.MaxFiles)
	}

	seeds := wikicrawl.NewLinkSet()
	for _, raw := range c.StartURLs {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		u, err := wikicrawl.Canonicalize(raw)
		if err != nil {
			return nil, wikicrawl.WrapError(wikicrawl.ECONFIG, err, "invalid start URL %q", raw)
		}
		seeds.Add(u)
	}
	if seeds.Len() == 0 {
		return nil, wikicrawl.Errorf(wikicrawl.ECONFIG, "at least one start URL required")
	}
	return seeds.URLs(), nil
}

// Summary holds the outcome of a run.
type Summary struct {
	// Written is the number of pages written in this run.
	Written int
	// Skipped is the number of URLs skipped because of fetch or extract errors.
	Skipped int
	// Duplicates is the number of URLs skipped as already processed.
	Duplicates int
	// Visited is the number of URLs accepted for processing in this run,
	// whether written or skipped.
	Visited int
	// Bytes is the total size of the written page bodies.
	Bytes int

	// NextSequence is the sequence number the next written page would get.
	NextSequence int
	// Remaining holds the frontier at termination, in pop order.
	Remaining []wikicrawl.CanonicalURL
	// Reason explains why the run ended.
	Reason StopReason
}

// Engine crawls pages breadth-first. Engine is not safe for concurrent use;
// one Run processes one URL at a time.
type Engine struct {
	Fetcher   wikicrawl.Fetcher
	Extractor wikicrawl.Extractor
	Writer    wikicrawl.Writer
	Ledger    wikicrawl.Ledger

	// RateLimiter, if set, is waited on before every fetch.
	RateLimiter wikicrawl.DomainLimiter

	// DedupeContent skips pages whose body was already written in this
	// run. Wikipedia serves redirects under the redirecting URL, so one
	// article can otherwise be written several times.
	DedupeContent bool
}

// errCanceled marks a URL whose processing was interrupted by the context.
var errCanceled = errors.New("processing canceled")

// Run crawls from the configured seeds until the frontier is exhausted or
// cfg.MaxFiles pages have been written, then flushes the ledger.
//
// Fetch and extract failures skip the URL and never end the run. A write or
// ledger failure stops the run immediately and is returned with code EWRITE
// together with the summary so far. The in-flight URL is then left out of the
// visited ledger and put back at the head of the persisted frontier, so a
// resumed run retries it.
//
// A ledger that cannot be loaded is a startup failure with code ECONFIG.
func (e *Engine) Run(ctx context.Context, cfg Config, progress ProgressFunc) (*Summary, error) {
	seeds, err := cfg.Seeds()
	if err != nil {
		return nil, err
	}

	state, err := e.Ledger.Load(ctx)
	if err != nil {
		return nil, wikicrawl.WrapError(wikicrawl.ECONFIG, err, "load ledger")
	}

	r := &run{
		engine:   e,
		cfg:      cfg,
		progress: progress,
		visited:  NewVisitedSet(2 * len(state.Visited)),
		frontier: NewFrontier(),
		sequence: state.NextSequence,
		hashes:   make(map[uint64]struct{}),
	}
	if r.sequence < 1 {
		r.sequence = 1
	}
	for _, u := range state.Visited {
		r.visited.Add(u)
	}
	for _, u := range state.Frontier {
		r.enqueue(u)
	}
	for _, u := range seeds {
		r.enqueue(u)
	}

	return r.loop(ctx)
}

// run holds the state of a single Engine.Run call.
type run struct {
	engine   *Engine
	cfg      Config
	progress ProgressFunc

	visited  *VisitedSet
	frontier *Frontier
	sequence int
	hashes   map[uint64]struct{}

	summary Summary
}

func (r *run) loop(ctx context.Context) (*Summary, error) {
	var (
		runErr   error
		inFlight wikicrawl.CanonicalURL
	)

	for {
		if r.frontier.Len() == 0 {
			r.summary.Reason = StopExhausted
			break
		}
		if r.sequence > r.cfg.MaxFiles {
			r.summary.Reason = StopCapReached
			break
		}
		if err := ctx.Err(); err != nil {
			r.summary.Reason = StopCanceled
			runErr = err
			break
		}

		url, _ := r.frontier.Pop()
		if err := r.process(ctx, url); err != nil {
			inFlight = url
			if errors.Is(err, errCanceled) {
				r.summary.Reason = StopCanceled
				runErr = ctx.Err()
			} else {
				r.summary.Reason = StopWriteFailed
				runErr = err
			}
			break
		}
	}

	remaining := r.frontier.Pending()
	if inFlight != "" {
		remaining = append([]wikicrawl.CanonicalURL{inFlight}, remaining...)
	}
	r.summary.Remaining = remaining
	r.summary.NextSequence = r.sequence

	r.engine.Ledger.SetFrontier(remaining)
	if err := r.engine.Ledger.Flush(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		r.summary.Reason = StopWriteFailed
		runErr = wikicrawl.WrapError(wikicrawl.EWRITE, err, "flush ledger")
	}

	summary := r.summary
	return &summary, runErr
}

// process handles one popped URL. Per-URL failures are reported through
// progress and return nil; a non-nil error ends the run.
func (r *run) process(ctx context.Context, url wikicrawl.CanonicalURL) error {
	e := r.engine

	if !r.visited.Add(url) {
		r.summary.Duplicates++
		r.report(ProgressEvent{Outcome: OutcomeSkippedDuplicate, URL: url})
		return nil
	}

	if e.RateLimiter != nil {
		if err := e.RateLimiter.Wait(ctx, url.Host()); err != nil {
			if ctx.Err() != nil {
				return errCanceled
			}
			return r.skip(ctx, url, wikicrawl.WrapError(wikicrawl.EFETCH, err, "rate limit %s", url))
		}
	}

	html, err := e.Fetcher.Fetch(ctx, string(url))
	if err != nil {
		if ctx.Err() != nil {
			return errCanceled
		}
		return r.skip(ctx, url, withCode(wikicrawl.EFETCH, err, "fetch %s", url))
	}

	article, err := e.Extractor.Extract(html, url)
	if err != nil {
		return r.skip(ctx, url, withCode(wikicrawl.EEXTRACT, err, "extract %s", url))
	}

	if e.DedupeContent {
		hash := xxhash.Sum64String(article.Body)
		if _, ok := r.hashes[hash]; ok {
			r.summary.Visited++
			r.summary.Duplicates++
			e.Ledger.Record(url)
			if err := r.checkpoint(ctx); err != nil {
				return err
			}
			r.report(ProgressEvent{Outcome: OutcomeSkippedDuplicate, URL: url, Title: article.Title})
			return nil
		}
		r.hashes[hash] = struct{}{}
	}

	unit := &wikicrawl.Unit{
		Sequence: r.sequence,
		Title:    article.Title,
		Body:     article.Body,
		URL:      url,
	}
	file, err := e.Writer.Write(ctx, unit)
	if err != nil {
		return withCode(wikicrawl.EWRITE, err, "write %s", url)
	}

	r.summary.Visited++
	r.summary.Written++
	r.summary.Bytes += len(article.Body)
	e.Ledger.Record(url)
	r.sequence = e.Ledger.AdvanceSequence()

	queued := 0
	for _, link := range article.Links.URLs() {
		if r.enqueue(link) {
			queued++
		}
	}

	if err := r.checkpoint(ctx); err != nil {
		return err
	}
	r.report(ProgressEvent{
		Outcome:  OutcomeWritten,
		URL:      url,
		Sequence: unit.Sequence,
		File:     file,
		Title:    article.Title,
		Queued:   queued,
	})
	return nil
}

// skip records url as permanently skipped after a per-URL failure.
func (r *run) skip(ctx context.Context, url wikicrawl.CanonicalURL, cause error) error {
	r.summary.Visited++
	r.summary.Skipped++
	r.engine.Ledger.Record(url)
	if err := r.checkpoint(ctx); err != nil {
		return err
	}
	r.report(ProgressEvent{Outcome: OutcomeSkippedError, URL: url, Error: cause})
	return nil
}

// enqueue pushes url unless it was visited or is already queued.
func (r *run) enqueue(url wikicrawl.CanonicalURL) bool {
	if r.visited.Contains(url) {
		return false
	}
	return r.frontier.Push(url)
}

// checkpoint persists the ledger after a processed URL.
func (r *run) checkpoint(ctx context.Context) error {
	r.engine.Ledger.SetFrontier(r.frontier.Pending())
	if err := r.engine.Ledger.Flush(context.WithoutCancel(ctx)); err != nil {
		return wikicrawl.WrapError(wikicrawl.EWRITE, err, "flush ledger")
	}
	return nil
}

func (r *run) report(event ProgressEvent) {
	if r.progress == nil {
		return
	}
	event.Pending = r.frontier.Len()
	r.progress(event)
}

// withCode wraps err with code unless it already carries that code.
func withCode(code string, err error, format string, args ...any) error {
	if wikicrawl.ErrorCode(err) == code {
		return err
	}
	return wikicrawl.WrapError(code, err, format, args...)
}
