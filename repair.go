package pagetext

import (
	"context"
	"log/slog"
)

// Resolver turns a marker's URL back into fresh content. Implementations
// typically fetch and re-extract through the same selector configuration
// that produced the original document; tests use mock.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, url string) (string, error)

// Resolve calls the function.
func (f ResolverFunc) Resolve(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// RepairResult holds the outcome of a repair pass.
type RepairResult struct {
	// Document is the repaired document.
	Document string

	// Succeeded counts markers whose span was replaced with fresh content.
	Succeeded int

	// Failed counts markers whose URL could not be resolved; their spans
	// are left untouched.
	Failed int
}

// Repairer heals documents containing error markers by resolving each
// marker's URL and splicing the fresh content over the marker's span.
type Repairer struct {
	logger *slog.Logger
}

// NewRepairer creates a Repairer. A nil logger silences diagnostics.
func NewRepairer(logger *slog.Logger) *Repairer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repairer{logger: logger}
}

// Repair processes markers strictly in ascending original-offset order,
// resolving each URL and splicing the result into the document.
//
// Marker offsets were recorded against the original document, but every
// applied splice changes the document's length. The running delta is the
// net length change of all edits applied so far; adding it to a marker's
// original offsets yields that marker's position in the progressively
// edited document. Failed resolutions leave the span untouched and do not
// move the delta.
//
// Cancellation halts before the next marker begins, leaving the document
// in the cleanly-patched state from all prior iterations. Partial repair
// is an accepted terminal state, not an error.
func (r *Repairer) Repair(ctx context.Context, document string, markers []ErrorMarker, resolver Resolver) (*RepairResult, error) {
	result := &RepairResult{Document: document}
	if len(markers) == 0 {
		r.logger.Info("no error markers found, nothing to repair")
		return result, nil
	}

	delta := 0
	for i, marker := range markers {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r.logger.Info("repairing error marker",
			"index", i+1, "total", len(markers), "url", marker.URL)

		start := marker.Start + delta
		end := marker.End + delta

		content, err := resolver.Resolve(ctx, marker.URL)
		if err != nil {
			result.Failed++
			r.logger.Warn("failed to resolve marker URL, leaving span untouched",
				"index", i+1, "url", marker.URL, "error", err)
			continue
		}

		result.Document = result.Document[:start] + content + result.Document[end:]
		delta += len(content) - (end - start)
		result.Succeeded++
	}

	r.logger.Info("repair pass finished",
		"succeeded", result.Succeeded, "failed", result.Failed)
	return result, nil
}
