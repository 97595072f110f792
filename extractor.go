package wikicrawl

// Article is the readable content of a page.
type Article struct {
	// Title is the page title as displayed by the site.
	Title string

	// Body is the article text. Headings are rendered as "#"-prefixed
	// lines and paragraphs are separated by blank lines.
	Body string

	// Links are the same-site article URLs found in the content, in
	// document order, already canonicalized.
	Links *LinkSet
}

// Extractor turns a fetched page into an Article.
type Extractor interface {
	// Extract parses html fetched from source and returns its article.
	// Returns an error with code EEXTRACT when the markup holds no
	// extractable article content.
	Extract(html string, source CanonicalURL) (*Article, error)
}

// ExtractResult holds the main content of an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// ContentExtractor extracts main content from arbitrary HTML pages, removing
// boilerplate. It is used for sites without MediaWiki markup.
type ContentExtractor interface {
	// ExtractContent processes raw HTML and returns the main content.
	ExtractContent(html string) (*ExtractResult, error)
}
