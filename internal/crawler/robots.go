package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// robotsEnforcer answers permission checks against a ruleset fetched once
// per run from the crawl origin.
type robotsEnforcer struct {
	group     *robotstxt.Group
	userAgent string
}

// LoadRobotsPolicy fetches and parses <origin>/robots.txt. A load or parse
// failure is non-fatal: the returned policy permits everything, matching
// the behavior when robots enforcement is switched off.
func LoadRobotsPolicy(ctx context.Context, origin *url.URL, userAgent string, timeout time.Duration, logger *zap.Logger) RobotsPolicy {
	data, err := fetchRobots(ctx, origin, userAgent, timeout)
	if err != nil {
		logger.Warn("Could not load robots.txt; allowing all paths",
			zap.String("host", origin.Host),
			zap.Error(err),
		)
		return &allowAllPolicy{}
	}
	logger.Info("Loaded robots.txt", zap.String("host", origin.Host))
	return &robotsEnforcer{
		group:     data.FindGroup(userAgent),
		userAgent: userAgent,
	}
}

// NewAllowAllPolicy returns a policy that permits every path. Used when
// robots enforcement is disabled.
func NewAllowAllPolicy() RobotsPolicy {
	return &allowAllPolicy{}
}

// Allowed implements RobotsPolicy. A lookup without a matching group
// defaults to permitted.
func (r *robotsEnforcer) Allowed(path string) bool {
	if r.group == nil {
		return true
	}
	return r.group.Test(path)
}

func fetchRobots(ctx context.Context, origin *url.URL, userAgent string, timeout time.Duration) (*robotstxt.RobotsData, error) {
	robotsURL := url.URL{
		Scheme: origin.Scheme,
		Host:   origin.Host,
		Path:   "/robots.txt",
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new robots request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read robots body: %w", err)
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots: %w", err)
	}
	return data, nil
}

type allowAllPolicy struct{}

func (a *allowAllPolicy) Allowed(string) bool { return true }
