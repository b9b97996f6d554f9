// Package crawler implements the bounded breadth-first site crawler:
// the frontier loop, URL eligibility policy, fetch transport, and the
// retry and robots policies that govern it.
package crawler

import (
	"fmt"
	"strings"
)

// RunState represents the lifecycle state of a single crawl run.
type RunState string

// Run states reported by Frontier.State.
const (
	RunStateIdle      RunState = "idle"
	RunStateRunning   RunState = "running"
	RunStateCompleted RunState = "completed"
	RunStateAborted   RunState = "aborted"
)

// FetchedPage is the raw result of one successful fetch. It lives only
// long enough to be handed to content extraction and is never persisted.
type FetchedPage struct {
	URL         string
	StatusCode  int
	Body        string
	ContentType string
}

// IsHTML reports whether the response declared an HTML content type.
func (p FetchedPage) IsHTML() bool {
	return strings.Contains(p.ContentType, "text/html")
}

// frontierEntry is a pending (url, depth) pair. Depth is the BFS distance
// from the seed; links found on a page at depth d are enqueued at d+1.
type frontierEntry struct {
	url   string
	depth int
}

// FailureKind classifies fetch failures for retry decisions and logging.
type FailureKind string

// Fetch failure kinds.
const (
	FailureTimeout    FailureKind = "timeout"
	FailureHTTP       FailureKind = "http_error"
	FailureTransport  FailureKind = "transport_error"
	FailureUnexpected FailureKind = "unexpected"
)

// FetchError is the typed failure returned by a Fetcher. StatusCode is
// only set for FailureHTTP.
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Kind == FailureHTTP {
		return fmt.Sprintf("fetch failed: %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch failed: %s: %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *FetchError) Unwrap() error { return e.Err }
