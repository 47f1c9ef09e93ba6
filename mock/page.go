package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of sitecrawl.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, page *sitecrawl.Page) error
}

func (w *PageWriter) WritePage(ctx context.Context, page *sitecrawl.Page) error {
	return w.WritePageFn(ctx, page)
}
