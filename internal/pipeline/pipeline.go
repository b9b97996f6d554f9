// Package pipeline orchestrates one scraping run: frontier traversal,
// per-page extraction and enrichment, and handoff to the sink.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aicollect/sitescraper/internal/crawler"
	"github.com/aicollect/sitescraper/internal/enrich"
	"github.com/aicollect/sitescraper/internal/extract"
)

// Crawler produces the raw pages for one run.
type Crawler interface {
	Crawl(ctx context.Context) ([]crawler.FetchedPage, error)
}

// Sink receives the ordered batch of documents at the end of a run.
type Sink interface {
	Save(docs []enrich.Document) error
}

// Pipeline wires frontier, extractor, enricher, and sink together. Pages
// flow strictly downstream; a failure on one page drops that page only.
type Pipeline struct {
	crawler   Crawler
	extractor *extract.Extractor
	enricher  *enrich.Enricher
	sink      Sink
	logger    *zap.Logger
}

// New assembles a Pipeline.
func New(c Crawler, extractor *extract.Extractor, enricher *enrich.Enricher, sink Sink, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		crawler:   c,
		extractor: extractor,
		enricher:  enricher,
		sink:      sink,
		logger:    logger,
	}
}

// Run executes the full pipeline and returns the documents produced.
// A run with zero fetched pages short-circuits without touching the sink.
// Crawl setup failures and sink failures are fatal; per-page processing
// failures are logged and skipped.
func (p *Pipeline) Run(ctx context.Context) ([]enrich.Document, error) {
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))
	logger.Info("Starting scraping pipeline")

	pages, err := p.crawler.Crawl(ctx)
	if err != nil {
		return nil, fmt.Errorf("crawl: %w", err)
	}
	if len(pages) == 0 {
		logger.Warn("No pages were fetched")
		return nil, nil
	}

	logger.Info("Extracting and enriching content", zap.Int("pages", len(pages)))
	docs := make([]enrich.Document, 0, len(pages))
	for _, page := range pages {
		doc, err := p.processPage(page)
		if err != nil {
			logger.Error("Skipping page",
				zap.String("url", page.URL),
				zap.Error(err),
			)
			continue
		}
		docs = append(docs, doc)
	}

	if err := p.sink.Save(docs); err != nil {
		return nil, fmt.Errorf("save documents: %w", err)
	}

	logger.Info("Pipeline complete", zap.Int("documents", len(docs)))
	return docs, nil
}

// processPage extracts and enriches a single page. A panic in either step
// is contained here so one malformed page cannot abort the run.
func (p *Pipeline) processPage(page crawler.FetchedPage) (doc enrich.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("process page: %v", r)
		}
	}()
	content := p.extractor.Extract(page.Body)
	return p.enricher.Enrich(page.URL, content.Title, content.BodyText), nil
}
