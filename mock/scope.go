package mock

import (
	"context"

	"github.com/pagetext/pagetext"
)

var _ pagetext.Scope = (*Scope)(nil)

// Scope is a mock implementation of pagetext.Scope. Zero-value function
// fields behave as an empty, removable, textless element so simple trees
// can be built without wiring every field.
type Scope struct {
	FindFn   func(ctx context.Context, selector string, kind pagetext.SelectorKind) ([]pagetext.Scope, error)
	TextFn   func(ctx context.Context) (string, error)
	RemoveFn func(ctx context.Context) error

	// Removed records whether Remove was called.
	Removed bool
}

func (s *Scope) Find(ctx context.Context, selector string, kind pagetext.SelectorKind) ([]pagetext.Scope, error) {
	if s.FindFn == nil {
		return nil, nil
	}
	return s.FindFn(ctx, selector, kind)
}

func (s *Scope) Text(ctx context.Context) (string, error) {
	if s.TextFn == nil {
		return "", nil
	}
	return s.TextFn(ctx)
}

func (s *Scope) Remove(ctx context.Context) error {
	s.Removed = true
	if s.RemoveFn == nil {
		return nil
	}
	return s.RemoveFn(ctx)
}
