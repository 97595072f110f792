// Package goquery extracts articles and links from HTML using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikicrawl"
)

// parseHTML parses html into a goquery document.
func parseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// collectLinks adds the same-host links of the anchors in sel to links.
// keep filters the canonical URLs further.
func collectLinks(sel *goquery.Selection, source wikicrawl.CanonicalURL, links *wikicrawl.LinkSet, keep func(wikicrawl.CanonicalURL) bool) {
	sel.Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.) and in-page anchors
		if isNonHTTPLink(href) || strings.HasPrefix(href, "#") {
			return
		}

		resolved, err := wikicrawl.Resolve(source, href)
		if err != nil {
			return
		}

		// Filter external links (exact host match, subdomains are filtered)
		if resolved.Host() != source.Host() {
			return
		}

		// Filter self-referential links
		if resolved == source {
			return
		}

		if keep(resolved) {
			links.Add(resolved)
		}
	})
}

// articlePath returns the decoded path of u.
func articlePath(u wikicrawl.CanonicalURL) string {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return ""
	}
	return parsed.Path
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
