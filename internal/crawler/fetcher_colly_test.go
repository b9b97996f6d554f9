package crawler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func collyTestConfig(seed string) Config {
	return Config{
		SeedURL:   seed,
		MaxPages:  10,
		MaxDepth:  2,
		Timeout:   2 * time.Second,
		UserAgent: "TestBot/1.0",
	}
}

func TestCollyFetcherFetch(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			gotAgent = r.UserAgent()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><main>hello</main></body></html>"))
		case "/missing":
			http.NotFound(w, r)
		case "/flaky":
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	fetcher, err := NewCollyFetcher(collyTestConfig(srv.URL+"/"), zap.NewNop())
	require.NoError(t, err)

	t.Run("successful fetch", func(t *testing.T) {
		page, err := fetcher.Fetch(context.Background(), srv.URL+"/page")
		require.NoError(t, err)
		require.Equal(t, srv.URL+"/page", page.URL)
		require.Equal(t, http.StatusOK, page.StatusCode)
		require.Contains(t, page.Body, "hello")
		require.True(t, page.IsHTML())
		require.Equal(t, "TestBot/1.0", gotAgent)
	})

	t.Run("404 classified as http failure", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/missing")
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, FailureHTTP, fe.Kind)
		require.Equal(t, http.StatusNotFound, fe.StatusCode)
	})

	t.Run("503 carries its status for the retry policy", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/flaky")
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, FailureHTTP, fe.Kind)
		require.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
	})

	t.Run("repeat fetch of the same URL is permitted", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			page, err := fetcher.Fetch(context.Background(), srv.URL+"/page")
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, page.StatusCode)
		}
	})
}

func TestCollyFetcherConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := srv.URL
	srv.Close()

	fetcher, err := NewCollyFetcher(collyTestConfig(target+"/"), zap.NewNop())
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), target+"/page")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Contains(t, []FailureKind{FailureTransport, FailureTimeout}, fe.Kind)
}

func TestClassifyFetchError(t *testing.T) {
	t.Run("status wins over error shape", func(t *testing.T) {
		fe := classifyFetchError(500, errors.New("server error"))
		require.Equal(t, FailureHTTP, fe.Kind)
		require.Equal(t, 500, fe.StatusCode)
	})

	t.Run("deadline exceeded is a timeout", func(t *testing.T) {
		fe := classifyFetchError(0, context.DeadlineExceeded)
		require.Equal(t, FailureTimeout, fe.Kind)
	})

	t.Run("net op error is transport", func(t *testing.T) {
		opErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		fe := classifyFetchError(0, opErr)
		require.Equal(t, FailureTransport, fe.Kind)
	})

	t.Run("anything else is unexpected", func(t *testing.T) {
		fe := classifyFetchError(0, errors.New("mystery"))
		require.Equal(t, FailureUnexpected, fe.Kind)
	})

	t.Run("nil error still yields a usable error", func(t *testing.T) {
		fe := classifyFetchError(0, nil)
		require.Equal(t, FailureUnexpected, fe.Kind)
		require.NotEmpty(t, fe.Error())
	})
}
