// Package htmltomarkdown renders extracted article HTML as Markdown text.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikicrawl"
)

// Ensure Converter implements wikicrawl.Converter at compile time.
var _ wikicrawl.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert article HTML to text.
type Converter struct {
	conv       *converter.Converter
	plainLinks bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithPlainLinks renders links as their text only and drops images, so the
// output reads as prose rather than Markdown with URLs.
func WithPlainLinks() Option {
	return func(c *Converter) {
		c.plainLinks = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wikicrawl.Errorf(wikicrawl.EINVALID, "empty HTML input")
	}

	if c.plainLinks {
		stripped, err := stripLinks(html)
		if err != nil {
			return "", err
		}
		html = stripped
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EEXTRACT, err, "convert HTML")
	}

	return result, nil
}

// stripLinks replaces anchors with their contents and removes images.
func stripLinks(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", wikicrawl.WrapError(wikicrawl.EEXTRACT, err, "parse HTML")
	}
	doc.Find("img").Remove()
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		a.ReplaceWithSelection(a.Contents())
	})
	return doc.Find("body").Html()
}
