package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikicrawl"
)

// DefaultArticlePath is the URL path prefix of articles on Wikimedia wikis.
const DefaultArticlePath = "/wiki/"

// Ensure MediaWikiExtractor implements wikicrawl.Extractor at compile time.
var _ wikicrawl.Extractor = (*MediaWikiExtractor)(nil)

// MediaWikiExtractor extracts articles from pages rendered by MediaWiki.
//
// The body is built from the paragraphs directly under the content root
// (div.mw-content-ltr) and the headings at most two levels below it, in
// document order. Headings with no paragraph before the next heading are
// dropped. Links are taken from the collected paragraphs only, which leaves
// out navigation boxes, infoboxes and reference lists.
type MediaWikiExtractor struct {
	articlePath string
}

// MediaWikiOption configures a MediaWikiExtractor.
type MediaWikiOption func(*MediaWikiExtractor)

// WithArticlePath sets the path prefix that article links must have.
// Defaults to DefaultArticlePath.
func WithArticlePath(prefix string) MediaWikiOption {
	return func(e *MediaWikiExtractor) {
		if prefix != "" {
			e.articlePath = prefix
		}
	}
}

// NewMediaWikiExtractor creates a new MediaWikiExtractor.
func NewMediaWikiExtractor(opts ...MediaWikiOption) *MediaWikiExtractor {
	e := &MediaWikiExtractor{articlePath: DefaultArticlePath}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// block is a heading or paragraph of the article body.
type block struct {
	level int // 1-6 for headings, 0 for paragraphs
	text  string
}

// Extract parses a MediaWiki page fetched from source.
func (e *MediaWikiExtractor) Extract(html string, source wikicrawl.CanonicalURL) (*wikicrawl.Article, error) {
	doc, err := parseHTML(html)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("span.mw-page-title-main").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1#firstHeading").First().Text())
	}
	if title == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no page title in %s", source)
	}

	root := doc.Find("div.mw-content-ltr").First()
	if root.Length() == 0 {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no article content in %s", source)
	}
	root.Find(".mw-editsection").Remove()

	var blocks []block
	links := wikicrawl.NewLinkSet()
	root.Children().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		if name == "p" {
			collectLinks(child.Find("a[href]"), source, links, e.isArticle)
			if text := strings.TrimSpace(child.Text()); text != "" {
				blocks = append(blocks, block{text: text})
			}
			return
		}
		if level := headingLevel(name); level > 0 {
			blocks = append(blocks, block{level: level, text: strings.TrimSpace(child.Text())})
			return
		}
		child.Children().Each(func(_ int, grandchild *goquery.Selection) {
			if level := headingLevel(goquery.NodeName(grandchild)); level > 0 {
				blocks = append(blocks, block{level: level, text: strings.TrimSpace(grandchild.Text())})
			}
		})
	})

	body := renderBlocks(blocks)
	if body == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no article paragraphs in %s", source)
	}

	return &wikicrawl.Article{Title: title, Body: body, Links: links}, nil
}

// isArticle reports whether u is an article page of the wiki. Namespace
// pages such as "Dosya:", "Special:" or "Kategori:" are excluded.
func (e *MediaWikiExtractor) isArticle(u wikicrawl.CanonicalURL) bool {
	p := articlePath(u)
	name, ok := strings.CutPrefix(p, e.articlePath)
	return ok && name != "" && !strings.Contains(name, ":")
}

// headingLevel returns the level of an h1-h6 element name, or 0.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// renderBlocks renders blocks as text, dropping headings that are not
// followed by a paragraph before the next heading. Returns "" when there
// are no paragraphs.
func renderBlocks(blocks []block) string {
	var b strings.Builder
	paragraphs := 0
	for i, bl := range blocks {
		if bl.level == 0 {
			paragraphs++
			b.WriteString(bl.text)
			b.WriteString("\n\n")
			continue
		}
		if i+1 >= len(blocks) || blocks[i+1].level != 0 {
			continue
		}
		b.WriteString(strings.Repeat("#", bl.level))
		b.WriteString(" ")
		b.WriteString(bl.text)
		b.WriteString("\n\n")
	}
	if paragraphs == 0 {
		return ""
	}
	return b.String()
}
