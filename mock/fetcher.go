package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitecrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ sitecrawl.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of sitecrawl.Limiter.
type Limiter struct {
	WaitFn    func(ctx context.Context) error
	ObserveFn func(status int)
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}

func (l *Limiter) Observe(status int) {
	if l.ObserveFn != nil {
		l.ObserveFn(status)
	}
}
