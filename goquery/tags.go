package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagetext/pagetext"
)

// TagOptions controls what ExtractTags returns for each matched tag.
// The zero value returns the complete outer HTML of every match.
type TagOptions struct {
	// Attribute, when set, extracts that attribute's value instead of
	// the tag content. Tags missing the attribute are skipped.
	Attribute string

	// TextOnly extracts only the tag's text content; tags whose trimmed
	// text is empty are skipped.
	TextOnly bool
}

// ExtractTags returns the occurrences of a named tag in an HTML or mixed
// text document, in document order.
func ExtractTags(content, tagName string, opts TagOptions) ([]string, error) {
	if tagName == "" {
		return nil, pagetext.Errorf(pagetext.EINVALID, "tag name required")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "failed to parse HTML: %v", err)
	}

	var results []string
	doc.Find(tagName).Each(func(_ int, sel *goquery.Selection) {
		switch {
		case opts.Attribute != "":
			if val, ok := sel.Attr(opts.Attribute); ok {
				results = append(results, val)
			}
		case opts.TextOnly:
			if text := strings.TrimSpace(sel.Text()); text != "" {
				results = append(results, text)
			}
		default:
			if outer, err := goquery.OuterHtml(sel); err == nil {
				results = append(results, outer)
			}
		}
	})
	return results, nil
}

// ExtractTagMarkers returns the raw opening, self-closing, and closing tag
// markers for a named tag, without parsing the document. Faster than
// ExtractTags but blind to nesting; useful on text files that are not
// well-formed HTML.
func ExtractTagMarkers(content, tagName string) ([]string, error) {
	if tagName == "" {
		return nil, pagetext.Errorf(pagetext.EINVALID, "tag name required")
	}

	tag := regexp.QuoteMeta(tagName)
	re, err := regexp.Compile(`(?is)(?:<` + tag + `[^>]*/?>|</` + tag + `>)`)
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "invalid tag name %q: %v", tagName, err)
	}
	return re.FindAllString(content, -1), nil
}
