package wikicrawl

// Converter converts HTML to readable text.
type Converter interface {
	// Convert transforms HTML content into Markdown text.
	// The input should be clean HTML (e.g., from a ContentExtractor).
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}
