// Package readability extracts the main content of non-MediaWiki pages with
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/wikicrawl"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements wikicrawl.ContentExtractor at compile time.
var _ wikicrawl.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent processes raw HTML and returns the main content.
func (e *Extractor) ExtractContent(rawHTML string) (*wikicrawl.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, wikicrawl.WrapError(wikicrawl.EEXTRACT, err, "readability")
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no main content found")
	}

	return &wikicrawl.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
