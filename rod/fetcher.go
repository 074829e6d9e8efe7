// Package rod provides a browser-backed implementation of pagetext.Fetcher
// using Chrome automation. Pages render with JavaScript before extraction,
// so selector trees see the same DOM a reader would.
package rod

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/pagetext/pagetext"
)

// DefaultFetchTimeout bounds one navigation, including the load and
// network-idle waits.
const DefaultFetchTimeout = 30 * time.Second

// idleDuration is how long the network must stay quiet before a page
// counts as settled.
const idleDuration = 300 * time.Millisecond

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered content from URLs using Chrome browser
// automation. Each fetch acquires its own page and releases it on every
// exit path, so the sequential extraction and repair loops never leak
// browser resources.
type Fetcher struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	timeout   time.Duration
	stealth   bool
	logger    *slog.Logger
	evaluator *pagetext.Evaluator
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-navigation timeout.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithStealth creates pages with bot-detection countermeasures applied.
func WithStealth() Option {
	return func(f *Fetcher) {
		f.stealth = true
	}
}

// WithLogger sets the logger for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.evaluator = pagetext.NewEvaluator(f.logger)

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return f, nil
}

// Fetch navigates to the URL, waits for rendering to settle, and returns
// either the full rendered markup (no nodes) or the selector tree's joined
// output.
//
// Timeouts degrade to best-effort content: if the page does not finish
// loading, or the network never goes idle, within the per-navigation
// timeout, extraction proceeds with whatever has rendered so far.
func (f *Fetcher) Fetch(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.newPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	// Navigation and settling share one timeout budget; extraction below
	// runs outside it, bounded only by ctx.
	nav := page.Timeout(f.timeout)

	f.logger.Info("navigating", "url", url)
	if err := nav.Navigate(url); err != nil {
		return "", pagetext.Errorf(pagetext.EUNAVAILABLE, "navigation to %s failed: %v", url, err)
	}

	if err := nav.WaitLoad(); err != nil {
		f.logger.Warn("page load did not settle, accepting partial content", "url", url, "error", err)
	} else {
		wait := nav.WaitRequestIdle(idleDuration, nil, nil,
			[]proto.NetworkResourceType{proto.NetworkResourceTypeImage, proto.NetworkResourceTypeMedia})
		wait()
	}

	if len(nodes) == 0 {
		html, err := page.HTML()
		if err != nil {
			return "", err
		}
		return html, nil
	}

	return f.evaluator.Run(ctx, nodes, &pageScope{page: page})
}

// newPage acquires a fresh page, with stealth applied when configured.
func (f *Fetcher) newPage() (*rod.Page, error) {
	if f.stealth {
		return stealth.Page(f.browser)
	}
	return f.browser.Page(proto.TargetCreateTarget{})
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
