package pagetext

import (
	"fmt"
	"regexp"
	"strings"
)

// Delimiter is the sentinel line used by the document wire format: exactly
// 80 '=' characters.
var Delimiter = strings.Repeat("=", 80)

// markerPattern recognizes one error block. The URL is captured up to, but
// not including, trailing whitespace before the closing delimiter.
var markerPattern = regexp.MustCompile(`(?s)={80}\s*\nERROR - Failed to process URL: (.+?)\s*\n={80}`)

// ErrorMarker records a previously-failed extraction found in a flat text
// document. Start and End are byte offsets into the document as it existed
// at scan time.
type ErrorMarker struct {
	Start int
	End   int
	URL   string
}

// ScanMarkers scans document for sentinel error blocks and returns an
// ordered, non-overlapping list of markers in ascending document order.
// Zero markers means the document is already healthy.
func ScanMarkers(document string) []ErrorMarker {
	matches := markerPattern.FindAllStringSubmatchIndex(document, -1)

	markers := make([]ErrorMarker, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, ErrorMarker{
			Start: m[0],
			End:   m[1],
			URL:   strings.TrimSpace(document[m[2]:m[3]]),
		})
	}
	return markers
}

// ErrorBlock formats the sentinel block recording a failed URL extraction.
func ErrorBlock(url string) string {
	return Delimiter + "\nERROR - Failed to process URL: " + url + "\n" + Delimiter
}

// EntryHeader formats the header written before a successfully extracted
// URL's content when batch-processing a URL list. Index is 1-based.
func EntryHeader(index int, url string) string {
	return fmt.Sprintf("%s\nURL %d: %s\n%s", Delimiter, index, url, Delimiter)
}
