// Package batch drives the fetch collaborator over flat text documents:
// assembling one document from an ordered URL list, and healing the error
// blocks of a previously assembled document. All fetches are strictly
// sequential; URL k is always resolved before URL k+1 begins.
package batch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pagetext/pagetext"
)

// Processor assembles a flat text document from an ordered URL list.
// Each URL's extracted content is written under an indexed header; a URL
// whose fetch fails is recorded as a sentinel error block so a later
// repair pass can heal it.
type Processor struct {
	Fetcher pagetext.Fetcher
	Config  *pagetext.Config
	Logger  *slog.Logger
}

// Result holds the outcome of one batch run.
type Result struct {
	// Document is the assembled flat document.
	Document string

	// Succeeded counts URLs whose content was extracted.
	Succeeded int

	// Failed counts URLs recorded as error blocks.
	Failed int
}

// Run processes urls in order and returns the assembled document with
// tallies. Per-URL failures are recorded in the document and the run
// continues; cancellation halts before the next URL begins and returns
// the document assembled so far.
func (p *Processor) Run(ctx context.Context, urls []string) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg := p.Config
	if cfg == nil {
		cfg = &pagetext.Config{}
	}

	var b strings.Builder
	result := &Result{}

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			result.Document = b.String()
			return result, err
		}

		logger.Info("processing URL", "index", i+1, "total", len(urls), "url", url)

		if i > 0 {
			b.WriteString("\n\n")
		}

		target := pagetext.ResolveURL(url, cfg.BaseURL)
		content, err := p.Fetcher.Fetch(ctx, target, cfg.Nodes())
		if err != nil {
			// Record the URL as given, not as resolved: the repair pass
			// applies the base URL again when it re-fetches.
			b.WriteString(pagetext.ErrorBlock(url))
			result.Failed++
			logger.Warn("recording failed URL", "url", url, "error", err)
			continue
		}

		b.WriteString(pagetext.EntryHeader(i+1, target))
		b.WriteString("\n")
		b.WriteString(content)
		result.Succeeded++
	}

	result.Document = b.String()
	logger.Info("batch run finished",
		"succeeded", result.Succeeded, "failed", result.Failed)
	return result, nil
}
