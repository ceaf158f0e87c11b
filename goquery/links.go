package goquery

import (
	"net/url"
	"strings"
)

// resolveURL resolves href against base, which should end with a slash to
// act as a directory. Returns empty string if either cannot be parsed.
// Fragments are stripped.
func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// hostRoot returns host with exactly one trailing slash.
func hostRoot(host string) string {
	return strings.TrimRight(host, "/") + "/"
}

// isExternalLink reports whether href is an absolute HTTP link pointing
// away from host.
func isExternalLink(host, href string) bool {
	href = strings.TrimSpace(href)
	lower := strings.ToLower(href)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	return !strings.Contains(href, strings.TrimRight(host, "/"))
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
