package pagetext

import "context"

// Scope is the search root for one selector evaluation: either the whole
// rendered document or a single previously-matched element. Scopes are
// owned by the DOM-query collaborator and are never mutated by the
// evaluation engine except through Remove, which physically deletes the
// element from the live document.
//
// Implementations exist for live browser pages (rod/) and parsed static
// HTML (goquery/); tests use mock.Scope.
type Scope interface {
	// Find resolves the elements within this scope matching the selector
	// under the given kind, in document order. No matches is ([], nil),
	// not an error.
	Find(ctx context.Context, selector string, kind SelectorKind) ([]Scope, error)

	// Text returns the element's visible text with intra-element line
	// breaks preserved. Block-level breaks must survive extraction;
	// downstream repair and readability depend on them.
	Text(ctx context.Context) (string, error)

	// Remove physically deletes this element from its document.
	// Irreversible for the containing scope.
	Remove(ctx context.Context) error
}
