package sitecrawl

import "context"

// Page represents a single crawled page record.
type Page struct {
	// URL is the canonical URL the page was fetched from.
	URL string

	// Title is the contents of the page's <title> element.
	Title string

	// Links is the number of outbound links discovered on the page.
	Links int

	// Text is the extracted visible text of the page body.
	// Nil unless text extraction was requested.
	Text *string

	// Content is the raw fetched body.
	// Nil unless content capture was requested.
	Content *string
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageWriter consumes finished page records.
// Implementations must be safe for concurrent use by multiple workers.
type PageWriter interface {
	WritePage(ctx context.Context, page *Page) error
}
