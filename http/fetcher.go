// Package http provides the HTTP implementation of sitecrawl.Fetcher. All
// workers share a single Fetcher so the rate limiter gates the crawl as a
// whole.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// defaultUserAgent identifies the crawler to the target server.
const defaultUserAgent = "sitecrawl/1.0 (+https://github.com/fwojciec/sitecrawl)"

// Ensure Fetcher implements sitecrawl.Fetcher at compile time.
var _ sitecrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies over HTTP. When configured with a limiter it
// waits for clearance before every request and reports every response status
// back to the limiter, so throttling responses stretch the shared cool-down.
type Fetcher struct {
	client    *http.Client
	limiter   sitecrawl.Limiter
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLimiter installs the shared request gate.
func WithLimiter(l sitecrawl.Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch issues a GET request for the URL and returns the response body.
// A 429 response yields an ETHROTTLED error after extending the limiter's
// cool-down; any other non-2xx status yields EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitecrawl.Errorf(sitecrawl.EINVALID, "build request for %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", sitecrawl.Errorf(sitecrawl.EUNAVAILABLE, "GET %q: %v", url, err)
	}
	defer resp.Body.Close()

	if f.limiter != nil {
		f.limiter.Observe(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", sitecrawl.Errorf(sitecrawl.ETHROTTLED, "HTTP 429 for %q", url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", sitecrawl.Errorf(sitecrawl.EUNAVAILABLE, "HTTP %d for %q", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sitecrawl.Errorf(sitecrawl.EUNAVAILABLE, "read body of %q: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. A no-op for the plain HTTP client.
func (f *Fetcher) Close() error {
	return nil
}
