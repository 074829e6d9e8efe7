package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagetext/pagetext"
	"github.com/pagetext/pagetext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no arguments shows help and errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, nil, &stdout, &stderr)

		assert.Error(t, err)
		assert.Contains(t, stdout.String(), "Usage")
	})

	t.Run("help flag succeeds", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, []string{"--help"}, &stdout, &stderr)

		assert.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage")
	})

	t.Run("requires a URL or a URL list", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, []string{"--verbose"}, &stdout, &stderr)

		assert.Error(t, err)
	})

	t.Run("rejects an unknown selector type", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, []string{"--selector-type", "jquery", "https://example.com"}, &stdout, &stderr)

		assert.Error(t, err)
	})

	t.Run("extracts a single URL to stdout", func(t *testing.T) {
		t.Parallel()

		m := NewMain()
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error) {
				require.Len(t, nodes, 1)
				assert.Equal(t, "#content", nodes[0].Selector)
				return "page text", nil
			},
		}

		var stdout, stderr bytes.Buffer
		err := m.Run(ctx, []string{"--selector", "#content", "https://example.com"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "page text")
	})

	t.Run("writes a URL list batch to the output file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		listPath := filepath.Join(dir, "urls.txt")
		require.NoError(t, os.WriteFile(listPath, []byte("https://a.example\nhttps://b.example\n"), 0644))
		outPath := filepath.Join(dir, "out.txt")

		m := NewMain()
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error) {
				return "text of " + url, nil
			},
		}

		var stdout, stderr bytes.Buffer
		err := m.Run(ctx, []string{"--urls", listPath, "--output", outPath}, &stdout, &stderr)

		require.NoError(t, err)
		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), pagetext.EntryHeader(1, "https://a.example"))
		assert.Contains(t, string(data), "text of https://b.example")
	})

	t.Run("failed URLs are reported but do not abort", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		listPath := filepath.Join(dir, "urls.txt")
		require.NoError(t, os.WriteFile(listPath, []byte("https://a.example\nhttps://b.example\n"), 0644))

		m := NewMain()
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string, nodes []*pagetext.SelectorNode) (string, error) {
				if url == "https://a.example" {
					return "", errors.New("unreachable")
				}
				return "ok", nil
			},
		}

		var stdout, stderr bytes.Buffer
		err := m.Run(ctx, []string{"--urls", listPath}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), pagetext.ErrorBlock("https://a.example"))
		assert.Contains(t, stderr.String(), "1 of 2 URLs failed")
	})

	t.Run("missing URL list file errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, []string{"--urls", filepath.Join(t.TempDir(), "absent.txt")}, &stdout, &stderr)

		assert.Error(t, err)
	})
}
