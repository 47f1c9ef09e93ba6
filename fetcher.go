package sitecrawl

import "context"

// Fetcher retrieves page bodies from URLs.
type Fetcher interface {
	// Fetch issues a GET request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Limiter is the single shared gate that spaces outgoing requests.
// All workers share one Limiter so the crawl as a whole stays polite.
type Limiter interface {
	// Wait blocks until the next request may be issued.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context) error

	// Observe records the status code of a completed request and
	// schedules the earliest time the next request may be issued.
	// Throttling responses push that time further out.
	Observe(status int)
}
