package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExponentialRetryPolicyShouldRetry(t *testing.T) {
	policy := NewExponentialRetryPolicy()

	t.Run("retryable status codes", func(t *testing.T) {
		for _, status := range []int{429, 500, 502, 503, 504} {
			err := &FetchError{Kind: FailureHTTP, StatusCode: status, Err: errors.New("boom")}
			require.True(t, policy.ShouldRetry(err, 1), "status %d should retry", status)
		}
	})

	t.Run("non-retryable status codes surface immediately", func(t *testing.T) {
		for _, status := range []int{400, 401, 403, 404, 410, 501} {
			err := &FetchError{Kind: FailureHTTP, StatusCode: status, Err: errors.New("boom")}
			require.False(t, policy.ShouldRetry(err, 1), "status %d should not retry", status)
		}
	})

	t.Run("connection-level failures retry", func(t *testing.T) {
		require.True(t, policy.ShouldRetry(&FetchError{Kind: FailureTimeout, Err: errors.New("deadline")}, 1))
		require.True(t, policy.ShouldRetry(&FetchError{Kind: FailureTransport, Err: errors.New("refused")}, 1))
	})

	t.Run("unexpected failures do not retry", func(t *testing.T) {
		require.False(t, policy.ShouldRetry(&FetchError{Kind: FailureUnexpected, Err: errors.New("huh")}, 1))
	})

	t.Run("attempt cap", func(t *testing.T) {
		err := &FetchError{Kind: FailureHTTP, StatusCode: 503, Err: errors.New("boom")}
		require.True(t, policy.ShouldRetry(err, 2))
		require.False(t, policy.ShouldRetry(err, 3), "three attempts is the cap")
	})

	t.Run("context errors never retry", func(t *testing.T) {
		require.False(t, policy.ShouldRetry(context.Canceled, 1))
		require.False(t, policy.ShouldRetry(context.DeadlineExceeded, 1))
	})

	t.Run("nil error never retries", func(t *testing.T) {
		require.False(t, policy.ShouldRetry(nil, 1))
	})
}

func TestExponentialRetryPolicyBackoff(t *testing.T) {
	policy := NewExponentialRetryPolicy()

	for attempt := 0; attempt < 3; attempt++ {
		delay := policy.Backoff(attempt)
		require.Greater(t, delay, time.Duration(0))
		require.LessOrEqual(t, delay, policy.maxDelay)
		// Jitter makes samples overlap across attempts, so only the
		// deterministic lower half of the window is checked.
		lower := time.Duration(float64(policy.baseDelay) * float64(int(1)<<attempt) / 2)
		if lower > policy.maxDelay/2 {
			lower = policy.maxDelay / 2
		}
		require.GreaterOrEqual(t, delay, lower)
	}
}

type scriptedFetcher struct {
	results []fetchResult
	calls   int
}

func (s *scriptedFetcher) Fetch(_ context.Context, _ string) (FetchedPage, error) {
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++
	res := s.results[idx]
	return res.page, res.err
}

type noopPause struct{}

func (noopPause) Pause(context.Context, time.Duration) {}

func TestRetryingFetcher(t *testing.T) {
	t.Run("recovers after transient failures", func(t *testing.T) {
		want := FetchedPage{URL: "https://example.com/", StatusCode: 200, ContentType: "text/html"}
		inner := &scriptedFetcher{results: []fetchResult{
			{err: &FetchError{Kind: FailureHTTP, StatusCode: 503, Err: errors.New("unavailable")}},
			{err: &FetchError{Kind: FailureTimeout, Err: errors.New("timeout")}},
			{page: want},
		}}
		f := NewRetryingFetcher(inner, NewExponentialRetryPolicy(), zap.NewNop())
		f.pause = noopPause{}

		got, err := f.Fetch(context.Background(), "https://example.com/")
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("gives up after the attempt cap", func(t *testing.T) {
		failure := &FetchError{Kind: FailureHTTP, StatusCode: 500, Err: errors.New("boom")}
		inner := &scriptedFetcher{results: []fetchResult{{err: failure}}}
		f := NewRetryingFetcher(inner, NewExponentialRetryPolicy(), zap.NewNop())
		f.pause = noopPause{}

		_, err := f.Fetch(context.Background(), "https://example.com/")
		require.Error(t, err)
		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		require.Equal(t, 500, fetchErr.StatusCode)
		require.Equal(t, 3, inner.calls, "three attempts total")
	})

	t.Run("permanent failures surface without retry", func(t *testing.T) {
		inner := &scriptedFetcher{results: []fetchResult{
			{err: &FetchError{Kind: FailureHTTP, StatusCode: 404, Err: errors.New("not found")}},
			{page: FetchedPage{StatusCode: 200}},
		}}
		f := NewRetryingFetcher(inner, NewExponentialRetryPolicy(), zap.NewNop())
		f.pause = noopPause{}

		_, err := f.Fetch(context.Background(), "https://example.com/missing")
		require.Error(t, err)
		require.Equal(t, 1, inner.calls, "404 must not be retried")
	})
}
