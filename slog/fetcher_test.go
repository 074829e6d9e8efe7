package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/pagetext/pagetext"
	"github.com/pagetext/pagetext/mock"
	pagetextslog "github.com/pagetext/pagetext/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("logs successful fetches and passes content through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error) {
				return "content", nil
			},
		}
		f := pagetextslog.NewLoggingFetcher(next, logger)

		content, err := f.Fetch(context.Background(), "https://example.com", nil)

		require.NoError(t, err)
		assert.Equal(t, "content", content)
		assert.Contains(t, buf.String(), "fetch completed")
		assert.Contains(t, buf.String(), "https://example.com")
	})

	t.Run("logs failed fetches and propagates the error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error) {
				return "", errors.New("unreachable")
			},
		}
		f := pagetextslog.NewLoggingFetcher(next, logger)

		_, err := f.Fetch(context.Background(), "https://example.com", nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "fetch failed")
	})
}

func TestLoggingResolver(t *testing.T) {
	t.Parallel()

	t.Run("logs resolutions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Resolver{
			ResolveFn: func(ctx context.Context, url string) (string, error) {
				return "fresh", nil
			},
		}
		r := pagetextslog.NewLoggingResolver(next, logger)

		content, err := r.Resolve(context.Background(), "/chapter/1")

		require.NoError(t, err)
		assert.Equal(t, "fresh", content)
		assert.Contains(t, buf.String(), "resolution completed")
	})
}
