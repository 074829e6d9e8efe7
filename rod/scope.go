package rod

import (
	"context"

	"github.com/go-rod/rod"
	"github.com/pagetext/pagetext"
)

var (
	_ pagetext.Scope = (*pageScope)(nil)
	_ pagetext.Scope = (*elementScope)(nil)
)

// pageScope is the whole rendered document as a search root.
type pageScope struct {
	page *rod.Page
}

func (s *pageScope) Find(ctx context.Context, selector string, kind pagetext.SelectorKind) ([]pagetext.Scope, error) {
	page := s.page.Context(ctx)

	var els rod.Elements
	var err error
	switch kind {
	case pagetext.KindStructural:
		els, err = page.Elements(selector)
	case pagetext.KindPath:
		els, err = page.ElementsX(selector)
	default:
		return nil, pagetext.Errorf(pagetext.EINVALID, "unsupported selector kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return wrapElements(els), nil
}

func (s *pageScope) Text(ctx context.Context) (string, error) {
	return "", pagetext.Errorf(pagetext.EINVALID, "text extraction requires an element scope")
}

func (s *pageScope) Remove(ctx context.Context) error {
	return pagetext.Errorf(pagetext.EINVALID, "the document scope cannot be removed")
}

// elementScope is one previously-matched element as a search root.
type elementScope struct {
	el *rod.Element
}

func (s *elementScope) Find(ctx context.Context, selector string, kind pagetext.SelectorKind) ([]pagetext.Scope, error) {
	el := s.el.Context(ctx)

	var els rod.Elements
	var err error
	switch kind {
	case pagetext.KindStructural:
		els, err = el.Elements(selector)
	case pagetext.KindPath:
		els, err = el.ElementsX(selector)
	default:
		return nil, pagetext.Errorf(pagetext.EINVALID, "unsupported selector kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return wrapElements(els), nil
}

// Text returns the element's visible text. Chrome's innerText keeps the
// block-level line breaks the flat document format depends on.
func (s *elementScope) Text(ctx context.Context) (string, error) {
	return s.el.Context(ctx).Text()
}

// Remove physically deletes the element from the live page.
func (s *elementScope) Remove(ctx context.Context) error {
	return s.el.Context(ctx).Remove()
}

func wrapElements(els rod.Elements) []pagetext.Scope {
	scopes := make([]pagetext.Scope, 0, len(els))
	for _, el := range els {
		scopes = append(scopes, &elementScope{el: el})
	}
	return scopes
}
