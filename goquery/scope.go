// Package goquery provides a static-HTML implementation of pagetext.Scope
// backed by an in-memory parsed document, plus plain tag-extraction
// utilities for saved HTML files. It is used by the HTTP fetcher and by
// anything that needs selector evaluation without a live browser.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/pagetext/pagetext"
)

// Ensure Scope implements pagetext.Scope at compile time.
var _ pagetext.Scope = (*Scope)(nil)

// Scope is a search root over parsed static HTML: the whole document or a
// single matched element. Exclusion removal physically detaches nodes from
// the parsed document, so it is irreversible for the containing scope, the
// same contract a live-browser scope has.
type Scope struct {
	sel *goquery.Selection
}

// NewDocumentScope parses HTML and returns a scope spanning the whole
// document.
func NewDocumentScope(html string) (*Scope, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Scope{sel: doc.Selection}, nil
}

// Find resolves matching descendant elements in document order. Only
// structural (CSS) selectors are supported by the static scope; path
// selectors require a browser scope.
func (s *Scope) Find(ctx context.Context, selector string, kind pagetext.SelectorKind) ([]pagetext.Scope, error) {
	if kind != pagetext.KindStructural {
		return nil, pagetext.Errorf(pagetext.EINVALID, "selector kind %q is not supported by the static scope", kind)
	}

	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "invalid selector %q: %v", selector, err)
	}

	matches := s.sel.FindMatcher(matcher)
	scopes := make([]pagetext.Scope, 0, matches.Length())
	for i := 0; i < matches.Length(); i++ {
		scopes = append(scopes, &Scope{sel: matches.Eq(i)})
	}
	return scopes, nil
}

// Text returns the element's visible text with block-level line breaks
// preserved.
func (s *Scope) Text(ctx context.Context) (string, error) {
	return visibleText(s.sel), nil
}

// Remove detaches the element from the parsed document.
func (s *Scope) Remove(ctx context.Context) error {
	s.sel.Remove()
	return nil
}
