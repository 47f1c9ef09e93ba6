// Package robotstxt implements sitecrawl.AccessPolicy using
// github.com/temoto/robotstxt.
package robotstxt

import (
	"context"
	"net/url"

	"github.com/fwojciec/sitecrawl"
	"github.com/temoto/robotstxt"
)

// Ensure type implements interface.
var _ sitecrawl.AccessPolicy = (*Gate)(nil)

// Gate answers whether a URL may be fetched according to the site's
// robots.txt. A Gate is built once per crawl and is safe for
// concurrent use because the parsed rules are immutable after New.
type Gate struct {
	group     *robotstxt.Group
	userAgent string
}

// Option configures a Gate.
type Option func(*Gate)

// WithUserAgent sets the user agent the rules are matched against.
func WithUserAgent(ua string) Option {
	return func(g *Gate) { g.userAgent = ua }
}

const defaultUserAgent = "sitecrawl"

// New fetches and parses robots.txt for the seed's host. A missing or
// unreadable robots.txt yields a Gate that allows everything, matching
// how permissive crawlers treat absent rules.
func New(ctx context.Context, fetcher sitecrawl.Fetcher, seed *url.URL, opts ...Option) *Gate {
	g := &Gate{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(g)
	}

	robotsURL := &url.URL{Scheme: seed.Scheme, Host: seed.Host, Path: "/robots.txt"}
	body, err := fetcher.Fetch(ctx, robotsURL.String())
	if err != nil {
		return g
	}
	data, err := robotstxt.FromString(body)
	if err != nil {
		return g
	}
	g.group = data.FindGroup(g.userAgent)
	return g
}

// Allowed reports whether the URL's path may be fetched. A Gate with
// no parsed rules allows everything.
func (g *Gate) Allowed(u *url.URL) bool {
	if g.group == nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return g.group.Test(path)
}

// AllowAll returns a Gate that permits every URL. Used when robots.txt
// checking is disabled.
func AllowAll() *Gate {
	return &Gate{}
}
