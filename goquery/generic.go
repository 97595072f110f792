package goquery

import (
	"strings"

	"github.com/fwojciec/wikicrawl"
)

// Ensure GenericExtractor implements wikicrawl.Extractor at compile time.
var _ wikicrawl.Extractor = (*GenericExtractor)(nil)

// GenericExtractor extracts articles from sites without MediaWiki markup.
// Content extraction removes boilerplate, the converter renders the content
// as text and links are collected from every same-host anchor of the page.
type GenericExtractor struct {
	Content   wikicrawl.ContentExtractor
	Converter wikicrawl.Converter
}

// NewGenericExtractor creates a new GenericExtractor.
func NewGenericExtractor(content wikicrawl.ContentExtractor, converter wikicrawl.Converter) *GenericExtractor {
	return &GenericExtractor{Content: content, Converter: converter}
}

// Extract extracts the main content of a page fetched from source.
func (e *GenericExtractor) Extract(html string, source wikicrawl.CanonicalURL) (*wikicrawl.Article, error) {
	result, err := e.Content.ExtractContent(html)
	if err != nil {
		return nil, wikicrawl.WrapError(wikicrawl.EEXTRACT, err, "extract content of %s", source)
	}

	text, err := e.Converter.Convert(result.ContentHTML)
	if err != nil {
		return nil, wikicrawl.WrapError(wikicrawl.EEXTRACT, err, "convert content of %s", source)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no article content in %s", source)
	}

	doc, err := parseHTML(html)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(result.Title)
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no page title in %s", source)
	}

	links := wikicrawl.NewLinkSet()
	collectLinks(doc.Find("a[href]"), source, links, func(wikicrawl.CanonicalURL) bool { return true })

	return &wikicrawl.Article{Title: title, Body: text + "\n\n", Links: links}, nil
}
