// Package http provides an HTTP-based implementation of pagetext.Fetcher
// for fetching content from static sites that don't require JavaScript
// rendering. Selector trees are evaluated against the parsed response body.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	pagegoquery "github.com/pagetext/pagetext/goquery"

	"github.com/pagetext/pagetext"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (30s).
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using plain HTTP requests. Unlike
// rod.Fetcher, this does not execute JavaScript and is suitable for static
// sites only.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	logger    *slog.Logger
	evaluator *pagetext.Evaluator
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLogger sets the logger for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}
	f.evaluator = pagetext.NewEvaluator(f.logger)

	return f
}

// Fetch retrieves the URL and returns either the raw markup (no nodes) or
// the selector tree's joined output evaluated against the parsed body.
func (f *Fetcher) Fetch(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagetext.Errorf(pagetext.EINVALID, "invalid URL %s: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", pagetext.Errorf(pagetext.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if len(nodes) == 0 {
		return string(body), nil
	}

	scope, err := pagegoquery.NewDocumentScope(string(body))
	if err != nil {
		return "", err
	}
	return f.evaluator.Run(ctx, nodes, scope)
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
