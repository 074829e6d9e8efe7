// Package pagetext fetches rendered web pages, extracts structured text via
// configurable selector trees, and assembles the extracted fragments into
// flat text documents. A companion repair pass detects previously-failed
// extractions (marked by sentinel error blocks) and heals them in place by
// re-fetching and splicing corrected content at the correct byte offsets.
//
// This package contains domain types and pure logic following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, http/).
package pagetext
