package crawler

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// DefaultExclusionPatterns filters out authentication and session pages,
// non-content endpoints, commerce flows, and binary/media extensions.
// Matching is case-insensitive substring containment over path+query,
// not path-segment-exact, to preserve the established filtering footprint.
var DefaultExclusionPatterns = []string{
	"/login",
	"/logout",
	"/signin",
	"/signup",
	"/register",
	"/search",
	"/api/",
	"/admin/",
	"/cart",
	"/checkout",
	".pdf",
	".jpg",
	".jpeg",
	".png",
	".gif",
	".zip",
	".exe",
}

// URLPolicy decides whether a discovered URL is eligible to crawl. Apart
// from the shared visited set and the robots ruleset loaded at run start,
// eligibility is a pure function of the URL.
type URLPolicy struct {
	origin     *url.URL
	visited    *VisitSet
	robots     RobotsPolicy
	exclusions []string
	pattern    string
	logger     *zap.Logger
}

// NewURLPolicy builds a policy bound to the seed origin. An empty pattern
// disables the inclusion filter; nil exclusions fall back to the defaults.
func NewURLPolicy(
	origin *url.URL,
	visited *VisitSet,
	robots RobotsPolicy,
	exclusions []string,
	pattern string,
	logger *zap.Logger,
) *URLPolicy {
	if exclusions == nil {
		exclusions = DefaultExclusionPatterns
	}
	lowered := make([]string, 0, len(exclusions))
	for _, p := range exclusions {
		lowered = append(lowered, strings.ToLower(p))
	}
	return &URLPolicy{
		origin:     origin,
		visited:    visited,
		robots:     robots,
		exclusions: lowered,
		pattern:    pattern,
		logger:     logger,
	}
}

// Eligible reports whether rawURL should be crawled. All checks must pass:
// the URL parses, shares the seed origin exactly, has not been visited,
// is permitted by robots, matches no exclusion pattern in path+query, and
// contains the inclusion pattern when one is configured.
func (p *URLPolicy) Eligible(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		p.logger.Debug("Rejecting unparsable URL", zap.String("url", rawURL), zap.Error(err))
		return false
	}
	if !sameOrigin(parsed, p.origin) {
		return false
	}
	if p.visited.Contains(rawURL) {
		return false
	}
	if !p.robots.Allowed(parsed.Path) {
		return false
	}
	fullPath := strings.ToLower(parsed.Path)
	if parsed.RawQuery != "" {
		fullPath = strings.ToLower(parsed.Path + "?" + parsed.RawQuery)
	}
	for _, pattern := range p.exclusions {
		if strings.Contains(fullPath, pattern) {
			return false
		}
	}
	if p.pattern != "" && !strings.Contains(rawURL, p.pattern) {
		return false
	}
	return true
}
