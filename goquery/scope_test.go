package goquery_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pagetext/pagetext"
	"github.com/pagetext/pagetext/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("finds elements in document order", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(`<div class="t">one</div><p>x</p><div class="t">two</div>`)
		require.NoError(t, err)

		matches, err := scope.Find(ctx, ".t", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, matches, 2)

		first, err := matches[0].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "one", trimmed(first))

		second, err := matches[1].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "two", trimmed(second))
	})

	t.Run("no matches is empty, not an error", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(`<p>hello</p>`)
		require.NoError(t, err)

		matches, err := scope.Find(ctx, ".missing", pagetext.KindStructural)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("matched element becomes a sub-scope", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(
			`<div class="a"><span>inside</span></div><span>outside</span>`)
		require.NoError(t, err)

		outer, err := scope.Find(ctx, ".a", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, outer, 1)

		spans, err := outer[0].Find(ctx, "span", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, spans, 1)

		text, err := spans[0].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "inside", trimmed(text))
	})

	t.Run("rejects path selectors", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(`<p>x</p>`)
		require.NoError(t, err)

		_, err = scope.Find(ctx, "//p", pagetext.KindPath)
		assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(err))
	})

	t.Run("rejects malformed selectors", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(`<p>x</p>`)
		require.NoError(t, err)

		_, err = scope.Find(ctx, "p[", pagetext.KindStructural)
		assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(err))
	})
}

func TestScopeRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removal is destructive for the containing scope", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(
			`<div class="c">keep <span class="ad">strip</span> this</div>`)
		require.NoError(t, err)

		containers, err := scope.Find(ctx, ".c", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, containers, 1)

		ads, err := containers[0].Find(ctx, ".ad", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, ads, 1)
		require.NoError(t, ads[0].Remove(ctx))

		text, err := containers[0].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "keep this", trimmed(text))
	})
}

func TestScopeText(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("preserves block-level line breaks", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(
			`<div class="c"><p>first</p><p>second</p></div>`)
		require.NoError(t, err)

		matches, err := scope.Find(ctx, ".c", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, matches, 1)

		text, err := matches[0].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond", trimmed(text))
	})

	t.Run("br produces a line break", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(`<p id="x">a<br>b</p>`)
		require.NoError(t, err)

		matches, err := scope.Find(ctx, "#x", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, matches, 1)

		text, err := matches[0].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a\nb", trimmed(text))
	})

	t.Run("source formatting newlines collapse to spaces", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope("<p id=\"x\">one\n\t two</p>")
		require.NoError(t, err)

		matches, err := scope.Find(ctx, "#x", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, matches, 1)

		text, err := matches[0].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "one two", trimmed(text))
	})

	t.Run("script and style content is invisible", func(t *testing.T) {
		t.Parallel()

		scope, err := goquery.NewDocumentScope(
			`<div id="x">visible<script>var hidden = 1;</script></div>`)
		require.NoError(t, err)

		matches, err := scope.Find(ctx, "#x", pagetext.KindStructural)
		require.NoError(t, err)
		require.Len(t, matches, 1)

		text, err := matches[0].Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "visible", trimmed(text))
	})
}

// TestScopeWithEvaluator exercises the full selector engine against parsed
// HTML, the way the HTTP fetcher drives it.
func TestScopeWithEvaluator(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := pagetext.NewEvaluator(nil)

	html := `
		<div class="chapter">
			<h2>One</h2>
			<div class="body">text one<div class="ad">BUY NOW</div></div>
		</div>
		<div class="chapter">
			<h2>Two</h2>
			<div class="body">text two</div>
		</div>`

	scope, err := goquery.NewDocumentScope(html)
	require.NoError(t, err)

	nodes := []*pagetext.SelectorNode{{
		Selector:   ".chapter",
		Separator:  "\n",
		Exclusions: []string{".ad"},
		Children: []*pagetext.SelectorNode{
			{Selector: "h2"},
			{Selector: ".body"},
		},
	}}

	result, err := e.Run(ctx, nodes, scope)

	require.NoError(t, err)
	assert.Equal(t, "One\ntext one\nTwo\ntext two", result)
}

// trimmed strips the leading/trailing whitespace the evaluator would strip.
func trimmed(s string) string {
	return strings.TrimSpace(s)
}
