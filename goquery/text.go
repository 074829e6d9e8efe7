package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags are elements that terminate a visual line. Text following one
// of these starts on a new line, which is what downstream consumers of the
// flat document depend on.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "tr": true, "ul": true,
}

// skipTags are elements whose content is never visible.
var skipTags = map[string]bool{
	"head": true, "noscript": true, "script": true, "style": true,
	"template": true, "title": true,
}

var (
	interWordWS   = regexp.MustCompile(`[ \t\r\f\v]+`)
	spacedBreaks  = regexp.MustCompile(` *\n *`)
	runsOfBreaks  = regexp.MustCompile(`\n{3,}`)
)

// visibleText renders a selection the way a browser's innerText would:
// formatting whitespace inside text nodes collapses to single spaces,
// while <br> and block-level element boundaries produce line breaks.
func visibleText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeText(&b, node)
	}

	text := b.String()
	text = spacedBreaks.ReplaceAllString(text, "\n")
	text = runsOfBreaks.ReplaceAllString(text, "\n\n")
	return text
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		// Newlines inside text nodes are HTML source formatting, not
		// visual breaks.
		b.WriteString(interWordWS.ReplaceAllString(strings.ReplaceAll(n.Data, "\n", " "), " "))
		return
	case html.ElementNode:
		if skipTags[n.Data] {
			return
		}
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type == html.ElementNode && blockTags[n.Data] {
		b.WriteString("\n")
	}
}
