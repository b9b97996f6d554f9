package crawler

import (
	"context"
	"time"
)

// Fetcher retrieves a single URL and returns the raw page or a *FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (FetchedPage, error)
}

// RobotsPolicy answers whether the configured user agent may fetch a path
// on the crawl origin. Implementations default to permitted when the
// ruleset could not be loaded.
type RobotsPolicy interface {
	Allowed(path string) bool
}

// RetryPolicy decides whether a failed fetch attempt is worth repeating
// and how long to wait before the next attempt.
type RetryPolicy interface {
	ShouldRetry(err error, attempt int) bool
	Backoff(attempt int) time.Duration
}
