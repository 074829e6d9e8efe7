package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagetext/pagetext"
)

// Ensure LoggingResolver implements pagetext.Resolver.
var _ pagetext.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with timing and outcome logging.
type LoggingResolver struct {
	next   pagetext.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next pagetext.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	content, err := r.next.Resolve(ctx, url)
	if err != nil {
		r.logger.Warn("resolution failed",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}
	r.logger.Info("resolution completed",
		"url", url,
		"bytes", len(content),
		"duration", time.Since(begin),
	)
	return content, nil
}
