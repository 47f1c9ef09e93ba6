package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitecrawl"
)

// Normalizer canonicalizes parsed URLs into comparable string keys. The same
// normal form is used for frontier deduplication and for relevance-filter
// host comparisons.
type Normalizer struct {
	// PreserveScheme keeps http URLs on http. By default insecure URLs
	// are upgraded to https before comparison and fetching.
	PreserveScheme bool
}

// Normalize returns the canonical form of u: scheme upgraded to https
// (unless PreserveScheme), host lowercased, fragment stripped, query kept.
// Fails with EINVALID if the URL has no host.
func (n Normalizer) Normalize(u *url.URL) (string, error) {
	if u == nil || u.Host == "" {
		return "", sitecrawl.Errorf(sitecrawl.EINVALID, "URL has no host")
	}

	c := *u
	if !n.PreserveScheme && c.Scheme == "http" {
		c.Scheme = "https"
	}
	c.Host = strings.ToLower(c.Host)
	c.Fragment = ""
	c.RawFragment = ""

	return c.String(), nil
}

// NormalizeString parses raw and normalizes it in one step.
func (n Normalizer) NormalizeString(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", sitecrawl.Errorf(sitecrawl.EINVALID, "parse URL %q: %v", raw, err)
	}
	return n.Normalize(u)
}
