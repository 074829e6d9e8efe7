package mock

import (
	"context"

	"github.com/pagetext/pagetext"
)

var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagetext.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error) {
	return f.FetchFn(ctx, url, nodes)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
