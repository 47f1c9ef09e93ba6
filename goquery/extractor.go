// Package goquery provides the HTML implementation of sitecrawl.Extractor:
// outbound link discovery, title extraction, and optional visible-text
// extraction, all from static markup.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitecrawl"
)

// Ensure Extractor implements sitecrawl.Extractor at compile time.
var _ sitecrawl.Extractor = (*Extractor)(nil)

// Extractor pulls links, the title, and optionally body text out of fetched
// pages. It never fetches anything itself.
type Extractor struct {
	withText bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithText enables visible-text extraction from the page body.
func WithText() Option {
	return func(e *Extractor) {
		e.withText = true
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the body, resolves every anchor href against base, and
// returns the page title plus, when enabled, the whitespace-normalized text
// of the body element.
func (e *Extractor) Extract(body string, base *url.URL) (*sitecrawl.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "parse HTML: %v", err)
	}

	result := &sitecrawl.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		// Trailing slashes are trimmed so "/docs" and "/docs/" resolve
		// to the same URL.
		href = strings.TrimRight(strings.TrimSpace(href), "/")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		result.Links = append(result.Links, resolved)
	})

	if e.withText {
		result.Text = normalizeWhitespace(doc.Find("body").Text())
	}

	return result, nil
}

// isNonHTTPLink reports whether href points outside the web page graph
// (scripts, mail, phone numbers, in-page fragments).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(href, "#")
}

// resolveURL resolves href against base, returning "" when href cannot be
// parsed or resolves to a non-HTTP scheme.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
