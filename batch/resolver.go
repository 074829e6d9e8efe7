package batch

import (
	"context"
	"log/slog"

	"github.com/pagetext/pagetext"
)

// Ensure FetchResolver implements pagetext.Resolver at compile time.
var _ pagetext.Resolver = (*FetchResolver)(nil)

// FetchResolver adapts a Fetcher and a run configuration into the repair
// pipeline's Resolver: marker URLs get the configured base URL and default
// scheme applied, then are re-fetched through the same selector tree that
// produced the original document.
type FetchResolver struct {
	Fetcher pagetext.Fetcher
	Config  *pagetext.Config
}

// Resolve fetches fresh content for a marker's URL.
func (r *FetchResolver) Resolve(ctx context.Context, url string) (string, error) {
	cfg := r.Config
	if cfg == nil {
		cfg = &pagetext.Config{}
	}
	target := pagetext.ResolveURL(url, cfg.BaseURL)
	return r.Fetcher.Fetch(ctx, target, cfg.Nodes())
}

// Repair scans document for error markers and heals them through fetcher.
// It is the composition the pagefix binary runs: scan, then sequentially
// resolve and splice.
func Repair(ctx context.Context, document string, cfg *pagetext.Config, fetcher pagetext.Fetcher, logger *slog.Logger) (*pagetext.RepairResult, error) {
	markers := pagetext.ScanMarkers(document)
	resolver := &FetchResolver{Fetcher: fetcher, Config: cfg}
	return pagetext.NewRepairer(logger).Repair(ctx, document, markers, resolver)
}
