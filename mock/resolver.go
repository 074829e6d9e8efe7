package mock

import (
	"context"

	"github.com/pagetext/pagetext"
)

var _ pagetext.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of pagetext.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, url string) (string, error)
}

func (r *Resolver) Resolve(ctx context.Context, url string) (string, error) {
	return r.ResolveFn(ctx, url)
}
