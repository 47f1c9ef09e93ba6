package sitecrawl

import "net/url"

// ExtractResult holds what was pulled out of a fetched page.
type ExtractResult struct {
	// Title is the page title.
	Title string

	// Links are the outbound links found on the page, resolved to
	// absolute URLs against the page's own URL.
	Links []string

	// Text is the visible body text, whitespace-normalized.
	// Empty unless the extractor was configured to extract text.
	Text string
}

// Extractor turns fetched page content into links, a title, and optionally
// visible text. It is a pure function boundary: implementations must not
// fetch anything themselves.
type Extractor interface {
	// Extract parses the body and resolves discovered links against base.
	Extract(body string, base *url.URL) (*ExtractResult, error)
}

// RelevanceFilter decides whether a discovered URL is worth crawling.
type RelevanceFilter interface {
	// ShouldCrawl reports whether the candidate belongs to the crawl:
	// same host as the seed and inside its keyword neighborhood.
	ShouldCrawl(candidate *url.URL) bool
}
