package mock

import (
	"net/url"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitecrawl.Extractor.
type Extractor struct {
	ExtractFn func(body string, base *url.URL) (*sitecrawl.ExtractResult, error)
}

func (e *Extractor) Extract(body string, base *url.URL) (*sitecrawl.ExtractResult, error) {
	return e.ExtractFn(body, base)
}

var _ sitecrawl.RelevanceFilter = (*RelevanceFilter)(nil)

// RelevanceFilter is a mock implementation of sitecrawl.RelevanceFilter.
type RelevanceFilter struct {
	ShouldCrawlFn func(u *url.URL) bool
}

func (f *RelevanceFilter) ShouldCrawl(u *url.URL) bool {
	return f.ShouldCrawlFn(u)
}

var _ sitecrawl.AccessPolicy = (*AccessPolicy)(nil)

// AccessPolicy is a mock implementation of sitecrawl.AccessPolicy.
type AccessPolicy struct {
	AllowedFn func(u *url.URL) bool
}

func (p *AccessPolicy) Allowed(u *url.URL) bool {
	return p.AllowedFn(u)
}
