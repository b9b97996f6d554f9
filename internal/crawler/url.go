package crawler

import (
	"net/url"
	"strings"
)

// NormalizeLink resolves href against the page it was found on and strips
// the fragment component. Scheme, host, path, params, and query are kept
// unchanged so two URLs differing only by fragment collapse to one.
func NormalizeLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	abs.Fragment = ""
	if abs.Scheme == "" || abs.Host == "" {
		return "", false
	}
	return abs.String(), true
}

// sameOrigin reports whether two URLs share scheme and host (including
// port). Subdomains of the seed host do not match.
func sameOrigin(a, b *url.URL) bool {
	if a == nil || b == nil {
		return false
	}
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}
