package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/crawl"
)

// displayURLLength is the width URLs are truncated to in progress lines.
const displayURLLength = 80

// CrawlCmd runs one crawl.
type CrawlCmd struct {
	Config        crawl.Config
	DedupeContent bool
}

// Run executes the crawl and prints progress and a final summary.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	engine := &crawl.Engine{
		Fetcher:       deps.Fetcher,
		Extractor:     deps.Extractor,
		Writer:        deps.Writer,
		Ledger:        deps.Ledger,
		RateLimiter:   deps.RateLimiter,
		DedupeContent: c.DedupeContent,
	}

	summary, err := engine.Run(deps.Ctx, c.Config, printProgress(deps.Stdout))
	if summary != nil {
		printSummary(deps.Stdout, summary)
	}
	if err != nil {
		if !errors.Is(err, deps.Ctx.Err()) {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikicrawl.ErrorMessage(err))
		}
		return err
	}
	return nil
}

// printProgress returns a ProgressFunc writing one line per processed URL.
func printProgress(w io.Writer) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		url := crawl.TruncateURL(string(event.URL), displayURLLength)
		switch event.Outcome {
		case crawl.OutcomeWritten:
			fmt.Fprintf(w, "[%d] %s -> %s (+%d queued)\n", event.Sequence, event.Title, event.File, event.Queued)
		case crawl.OutcomeSkippedError:
			fmt.Fprintf(w, "skip %s: %s\n", url, wikicrawl.ErrorMessage(event.Error))
		case crawl.OutcomeSkippedDuplicate:
			fmt.Fprintf(w, "duplicate %s\n", url)
		}
	}
}

func printSummary(w io.Writer, s *crawl.Summary) {
	fmt.Fprintf(w, "\nDone (%s): %d written (%s), %d skipped, %d duplicates, %d remaining\n",
		s.Reason, s.Written, crawl.FormatBytes(s.Bytes), s.Skipped, s.Duplicates, len(s.Remaining))
}
