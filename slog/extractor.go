package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// Ensure LoggingExtractor implements wikicrawl.Extractor.
var _ wikicrawl.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   wikicrawl.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next wikicrawl.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the article size and
// number of links found.
func (e *LoggingExtractor) Extract(html string, source wikicrawl.CanonicalURL) (article *wikicrawl.Article, err error) {
	defer func(begin time.Time) {
		var title string
		var bytes, links int
		if article != nil {
			title = article.Title
			bytes = len(article.Body)
			links = article.Links.Len()
		}
		e.logger.Info("extract",
			"url", source,
			"title", title,
			"bytes", bytes,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, source)
}
