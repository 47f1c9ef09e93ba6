package sitecrawl

import "net/url"

// AccessPolicy gates which URLs the crawler may request at all.
// The zero policy is "allow everything"; the robotstxt package provides an
// implementation backed by the site's robots.txt.
type AccessPolicy interface {
	// Allowed reports whether the crawler may fetch the URL.
	Allowed(u *url.URL) bool
}
