package mock

import "github.com/fwojciec/wikicrawl"

var _ wikicrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wikicrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string, source wikicrawl.CanonicalURL) (*wikicrawl.Article, error)
}

func (e *Extractor) Extract(html string, source wikicrawl.CanonicalURL) (*wikicrawl.Article, error) {
	return e.ExtractFn(html, source)
}

var _ wikicrawl.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of wikicrawl.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (*wikicrawl.ExtractResult, error)
}

func (e *ContentExtractor) ExtractContent(html string) (*wikicrawl.ExtractResult, error) {
	return e.ExtractContentFn(html)
}
