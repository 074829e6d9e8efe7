package pagetext

import "context"

// Fetcher is the fetch collaborator consumed by both the extraction and
// repair pipelines. Implementations may use browser automation to handle
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for rendering to settle, and
	// returns the extracted content. With no selector nodes it returns
	// the full rendered markup; with nodes it returns the selector
	// tree's joined output, which may be empty if nothing matched.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, nodes []*SelectorNode) (string, error)

	// Close releases fetch resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
