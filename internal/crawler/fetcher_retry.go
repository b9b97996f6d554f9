package crawler

import (
	"context"

	"go.uber.org/zap"
)

// RetryingFetcher wraps a Fetcher with a fixed transport-level retry
// policy. The frontier above it never sees individual attempts, only the
// final page or failure.
type RetryingFetcher struct {
	inner  Fetcher
	policy RetryPolicy
	pause  pauseController
	logger *zap.Logger
}

// NewRetryingFetcher wraps inner with policy.
func NewRetryingFetcher(inner Fetcher, policy RetryPolicy, logger *zap.Logger) *RetryingFetcher {
	return &RetryingFetcher{
		inner:  inner,
		policy: policy,
		pause:  &timerPauseController{},
		logger: logger,
	}
}

// Fetch attempts the request, backing off between retries of transient
// failures until the policy gives up.
func (f *RetryingFetcher) Fetch(ctx context.Context, rawURL string) (FetchedPage, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		page, err := f.inner.Fetch(ctx, rawURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !f.policy.ShouldRetry(err, attempt+1) {
			return FetchedPage{}, lastErr
		}
		fetchRetries.Inc()
		f.logger.Debug("Retrying fetch",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		f.pause.Pause(ctx, f.policy.Backoff(attempt))
		if ctx.Err() != nil {
			return FetchedPage{}, lastErr
		}
	}
}
