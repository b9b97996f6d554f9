package crawler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollyFetcher implements the Fetcher interface using the Colly collector.
// Each Fetch clones the base collector so per-request handlers never leak
// between calls.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based Fetcher. Robots
// handling is disabled at the collector because the URL policy owns that
// decision, and URL revisits are allowed so the retry layer can repeat a
// failed request.
func NewCollyFetcher(cfg Config, logger *zap.Logger) (*CollyFetcher, error) {
	base := colly.NewCollector(
		colly.Async(true),
		colly.UserAgent(cfg.UserAgent),
		colly.IgnoreRobotsTxt(),
	)
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.Timeout)

	return &CollyFetcher{
		baseCollector: base,
		logger:        logger,
	}, nil
}

// Fetch retrieves a page via the configured Colly collector. Non-2xx
// responses and transport failures come back as a *FetchError.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (FetchedPage, error) {
	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		contentType := ""
		if r.Headers != nil {
			contentType = r.Headers.Get("Content-Type")
		}
		send(fetchResult{page: FetchedPage{
			URL:         rawURL,
			StatusCode:  r.StatusCode,
			Body:        string(r.Body),
			ContentType: contentType,
		}})
	})

	collector.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		send(fetchResult{err: classifyFetchError(status, err)})
	})

	if err := collector.Visit(rawURL); err != nil {
		return FetchedPage{}, classifyFetchError(0, err)
	}
	collector.Wait()

	if err := ctx.Err(); err != nil {
		return FetchedPage{}, err
	}
	select {
	case res := <-resultCh:
		return res.page, res.err
	default:
		return FetchedPage{}, &FetchError{
			Kind: FailureUnexpected,
			Err:  errors.New("fetch produced no result"),
		}
	}
}

type fetchResult struct {
	page FetchedPage
	err  error
}

// classifyFetchError maps transport outcomes onto the fixed failure kinds.
func classifyFetchError(status int, err error) *FetchError {
	if err == nil {
		err = errors.New("unknown fetch error")
	}
	if status > 0 {
		return &FetchError{Kind: FailureHTTP, StatusCode: status, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: FailureTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &FetchError{Kind: FailureTimeout, Err: err}
		}
		return &FetchError{Kind: FailureTransport, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &FetchError{Kind: FailureTransport, Err: err}
	}
	return &FetchError{Kind: FailureUnexpected, Err: err}
}
