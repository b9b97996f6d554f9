package crawler

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// Frontier drives a breadth-first crawl from the seed URL. The pending
// queue is strict FIFO, maxPages bounds pages accepted into the corpus
// (not fetch attempts), and maxDepth bounds how far link discovery
// travels from the seed. State is owned by a single run and never shared
// across runs.
type Frontier struct {
	cfg     Config
	fetcher Fetcher
	policy  *URLPolicy
	visited *VisitSet
	pause   pauseController
	logger  *zap.Logger
	state   RunState
}

// NewFrontier assembles a frontier over the given fetcher and policy. The
// visited set must be the same instance the policy consults.
func NewFrontier(cfg Config, fetcher Fetcher, policy *URLPolicy, visited *VisitSet, logger *zap.Logger) *Frontier {
	return &Frontier{
		cfg:     cfg,
		fetcher: fetcher,
		policy:  policy,
		visited: visited,
		pause:   &timerPauseController{},
		logger:  logger,
		state:   RunStateIdle,
	}
}

// State returns the lifecycle state of the most recent run.
func (f *Frontier) State() RunState { return f.state }

// Crawl runs the frontier to completion and returns the accepted pages in
// fetch order. Individual fetch failures drop their entry and never abort
// the run; only setup failures and context cancellation do.
func (f *Frontier) Crawl(ctx context.Context) ([]FetchedPage, error) {
	seed, err := url.Parse(f.cfg.SeedURL)
	if err != nil || seed.Scheme == "" || seed.Host == "" {
		f.state = RunStateAborted
		return nil, fmt.Errorf("unusable seed URL %q: %w", f.cfg.SeedURL, err)
	}
	f.state = RunStateRunning
	f.logger.Info("Starting crawl",
		zap.String("seed", f.cfg.SeedURL),
		zap.Int("max_pages", f.cfg.MaxPages),
		zap.Int("max_depth", f.cfg.MaxDepth),
	)

	queue := []frontierEntry{{url: f.cfg.SeedURL, depth: 0}}
	var accepted []FetchedPage

	for len(queue) > 0 && len(accepted) < f.cfg.MaxPages {
		if ctx.Err() != nil {
			f.state = RunStateAborted
			return accepted, ctx.Err()
		}

		entry := queue[0]
		queue = queue[1:]

		if entry.depth > f.cfg.MaxDepth {
			continue
		}
		// The visited set may have grown since this entry was enqueued;
		// whichever duplicate is dequeued first wins.
		if f.visited.Contains(entry.url) {
			continue
		}
		if !f.policy.Eligible(entry.url) {
			continue
		}
		f.visited.MarkIfNew(entry.url)

		f.logger.Info("Fetching page",
			zap.String("url", entry.url),
			zap.Int("depth", entry.depth),
			zap.String("progress", fmt.Sprintf("%d/%d", len(accepted)+1, f.cfg.MaxPages)),
		)
		fetchAttempts.Inc()
		page, err := f.fetcher.Fetch(ctx, entry.url)
		if err != nil {
			fetchErrors.Inc()
			f.logger.Warn("Fetch failed; dropping frontier entry",
				zap.String("url", entry.url),
				zap.Error(err),
			)
			continue
		}

		if page.IsHTML() {
			accepted = append(accepted, page)
			pagesAccepted.Inc()
			if entry.depth < f.cfg.MaxDepth {
				queue = f.enqueueLinks(queue, page, entry.depth)
			}
		} else {
			f.logger.Debug("Skipping non-HTML response",
				zap.String("url", entry.url),
				zap.String("content_type", page.ContentType),
			)
		}

		// No delay after the page that reaches the cap; no further fetch
		// will occur.
		if len(accepted) < f.cfg.MaxPages {
			f.pause.Pause(ctx, f.cfg.Delay)
		}
	}

	f.state = RunStateCompleted
	f.logger.Info("Crawl complete",
		zap.Int("pages_accepted", len(accepted)),
		zap.Int("urls_visited", f.visited.Len()),
	)
	return accepted, nil
}

func (f *Frontier) enqueueLinks(queue []frontierEntry, page FetchedPage, depth int) []frontierEntry {
	base, err := url.Parse(page.URL)
	if err != nil {
		return queue
	}
	for _, link := range extractLinks(page.Body, base) {
		if f.visited.Contains(link) {
			continue
		}
		linksDiscovered.Inc()
		queue = append(queue, frontierEntry{url: link, depth: depth + 1})
	}
	return queue
}
