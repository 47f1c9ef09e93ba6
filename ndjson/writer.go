// Package ndjson writes page records as newline-delimited JSON, one record
// per line, in the order the crawl finishes them.
package ndjson

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/fwojciec/sitecrawl"
)

// Ensure Writer implements sitecrawl.PageWriter at compile time.
var _ sitecrawl.PageWriter = (*Writer)(nil)

// record fixes the field order and presence rules of the output format:
// URL, Title and Links always appear; Text and Content only when captured.
type record struct {
	URL     string  `json:"URL"`
	Title   string  `json:"Title"`
	Links   int     `json:"Links"`
	Text    *string `json:"Text,omitempty"`
	Content *string `json:"Content,omitempty"`
}

// Writer serializes page records to an io.Writer. It is safe for concurrent
// use by multiple workers; records are written whole, one per line.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	// Keep raw HTML readable in Content; the standard escaping of control
	// characters and quotes still applies.
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// WritePage serializes one page record followed by a newline.
func (w *Writer) WritePage(_ context.Context, page *sitecrawl.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	rec := record{
		URL:     page.URL,
		Title:   page.Title,
		Links:   page.Links,
		Text:    page.Text,
		Content: page.Content,
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.enc.Encode(rec); err != nil {
		return sitecrawl.Errorf(sitecrawl.EINTERNAL, "encode record for %q: %v", page.URL, err)
	}
	return nil
}
