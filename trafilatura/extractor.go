// Package trafilatura extracts the main content of non-MediaWiki pages with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/wikicrawl"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements wikicrawl.ContentExtractor at compile time.
var _ wikicrawl.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Comment sections are excluded and
// the readability fallback is enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// ExtractContent processes raw HTML and returns the main content.
func (e *Extractor) ExtractContent(rawHTML string) (*wikicrawl.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, wikicrawl.WrapError(wikicrawl.EEXTRACT, err, "trafilatura")
	}
	if result.ContentNode == nil {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no main content found")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, wikicrawl.WrapError(wikicrawl.EEXTRACT, err, "render content")
	}

	return &wikicrawl.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
