package crawl

import (
	"net/url"
	"slices"
	"strings"
	"unicode"

	"github.com/fwojciec/sitecrawl"
)

// stopWords are path segments that carry no topical signal: articles,
// prepositions, and crawl-generic terms.
var stopWords = map[string]struct{}{
	"how": {}, "the": {}, "and": {}, "for": {}, "with": {},
	"from": {}, "about": {},
	"category": {}, "categories": {}, "tag": {}, "tags": {},
}

// genericKeywords always count as a keyword match regardless of the seed's
// own keyword set.
var genericKeywords = []string{"tutorial", "guide", "blog"}

// Keywords extracts topical keywords from a URL path: the path is lowercased
// and split on '/', '-' and '_'; segments that are empty, purely numeric,
// shorter than 3 bytes, or stop words are dropped; non-alphanumeric ASCII is
// stripped from what remains.
func Keywords(u *url.URL) []string {
	path := strings.ToLower(u.Path)

	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '-' || r == '_'
	})

	keywords := make([]string, 0, len(segments))
	for _, s := range segments {
		if len(s) < 3 || allNumeric(s) {
			continue
		}
		if _, ok := stopWords[s]; ok {
			continue
		}
		keywords = append(keywords, stripNonAlnum(s))
	}
	return keywords
}

func allNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Compile-time interface verification.
var _ sitecrawl.RelevanceFilter = (*KeywordFilter)(nil)

// KeywordFilter decides whether a discovered URL is worth crawling: the
// candidate must live on the seed's host, and, when a match threshold is
// set, share enough path keywords with the seed (or the generic allow-list).
//
// With a zero threshold the match count is still computed, but every
// same-host candidate is accepted.
type KeywordFilter struct {
	host      string
	keywords  []string
	threshold int
}

// FilterOption configures a KeywordFilter.
type FilterOption func(*KeywordFilter)

// WithMatchThreshold requires at least n keyword matches for a candidate to
// be accepted. n <= 0 disables the keyword gate.
func WithMatchThreshold(n int) FilterOption {
	return func(f *KeywordFilter) {
		f.threshold = n
	}
}

// NewKeywordFilter creates a filter anchored to the seed URL's host and the
// keywords extracted from its path.
func NewKeywordFilter(seed *url.URL, opts ...FilterOption) *KeywordFilter {
	f := &KeywordFilter{
		host:     strings.ToLower(seed.Hostname()),
		keywords: Keywords(seed),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ShouldCrawl reports whether the candidate belongs to the crawl.
func (f *KeywordFilter) ShouldCrawl(candidate *url.URL) bool {
	if candidate == nil {
		return false
	}
	if !strings.EqualFold(candidate.Hostname(), f.host) {
		return false
	}

	matches := 0
	for _, kw := range Keywords(candidate) {
		if slices.Contains(f.keywords, kw) || slices.Contains(genericKeywords, kw) {
			matches++
		}
	}

	if f.threshold > 0 {
		return matches >= f.threshold
	}
	return true
}
