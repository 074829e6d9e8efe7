package pagetext

import "strings"

// DefaultScheme is assumed for URLs that lack a recognized scheme after
// base-URL application.
const DefaultScheme = "https://"

// hasScheme reports whether the URL already carries a recognized scheme or
// is scheme-relative.
func hasScheme(url string) bool {
	return strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "file://") ||
		strings.HasPrefix(url, "//")
}

// ResolveURL rewrites a possibly-relative URL into an absolute one. If the
// URL does not already carry a scheme and base is non-empty, base is
// prepended, first stripping the URL's leading path separator when base
// already ends in one. If the result still lacks a recognized scheme, the
// default scheme is prepended once, never doubled.
func ResolveURL(url, base string) string {
	if base != "" && !hasScheme(url) {
		if strings.HasPrefix(url, "/") && strings.HasSuffix(base, "/") {
			url = strings.TrimPrefix(url, "/")
		}
		url = base + url
	}

	switch {
	case strings.HasPrefix(url, "http://"),
		strings.HasPrefix(url, "https://"),
		strings.HasPrefix(url, "file://"):
		return url
	case strings.HasPrefix(url, "//"):
		// Scheme-relative: complete the scheme without doubling slashes.
		return "https:" + url
	default:
		return DefaultScheme + url
	}
}
