package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aicollect/sitescraper/internal/crawler"
	"github.com/aicollect/sitescraper/internal/enrich"
	"github.com/aicollect/sitescraper/internal/extract"
	"github.com/aicollect/sitescraper/internal/logging"
	"github.com/aicollect/sitescraper/internal/ops"
	"github.com/aicollect/sitescraper/internal/pipeline"
	"github.com/aicollect/sitescraper/internal/storage"
)

// newScrapeCmd creates the 'scrape' subcommand, which runs the full
// crawl-extract-enrich-save pipeline against a seed URL.
func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape <seed-url>",
		Short: "Crawl a site and write the enriched corpus",
		Long: `Crawls breadth-first from the seed URL, bounded by page and depth
limits, and writes one JSON document per accepted page.

Examples:
  sitescraper scrape https://quotes.toscrape.com --max-pages 50
  sitescraper scrape https://docs.python.org --url-pattern /docs/ --output docs.jsonl
  sitescraper scrape https://example.com --max-pages 20 --delay 500ms`,
		Args: cobra.ExactArgs(1),
		RunE: runScrapeCommand,
	}

	flags := cmd.Flags()
	flags.Int("max-pages", 100, "maximum number of pages to accept into the corpus")
	flags.Int("max-depth", 5, "maximum crawl depth from the seed URL")
	flags.Duration("delay", time.Second, "delay between requests")
	flags.Duration("timeout", 10*time.Second, "per-request timeout")
	flags.String("output", "output.jsonl", "output JSONL file path")
	flags.String("url-pattern", "", "only crawl URLs containing this substring")
	flags.Bool("no-robots", false, "do not respect robots.txt")
	flags.Bool("append", false, "append to the output file instead of overwriting")
	flags.String("metrics-addr", "", "optional address for the /metrics and /healthz listener")

	_ = viper.BindPFlag("scraper.max_pages", flags.Lookup("max-pages"))
	_ = viper.BindPFlag("scraper.max_depth", flags.Lookup("max-depth"))
	_ = viper.BindPFlag("scraper.delay", flags.Lookup("delay"))
	_ = viper.BindPFlag("scraper.timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("scraper.output", flags.Lookup("output"))
	_ = viper.BindPFlag("scraper.url_pattern", flags.Lookup("url-pattern"))
	_ = viper.BindPFlag("scraper.no_robots", flags.Lookup("no-robots"))
	_ = viper.BindPFlag("scraper.append", flags.Lookup("append"))
	_ = viper.BindPFlag("scraper.metrics_addr", flags.Lookup("metrics-addr"))

	return cmd
}

func runScrapeCommand(cmd *cobra.Command, args []string) error {
	viper.Set("scraper.seed_url", args[0])

	logger, err := logging.New(viper.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := crawler.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pipe, err := buildPipeline(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	if addr := viper.GetString("scraper.metrics_addr"); addr != "" {
		opsServer := ops.NewServer(addr, logger)
		opsServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = opsServer.Shutdown(shutdownCtx)
		}()
	}

	docs, err := pipe.Run(cmd.Context())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return errNoDocuments
	}

	logger.Info("Scrape succeeded",
		zap.Int("documents", len(docs)),
		zap.String("output", viper.GetString("scraper.output")),
	)
	return nil
}

// buildPipeline assembles the crawl pipeline from configuration.
func buildPipeline(ctx context.Context, cfg crawler.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	origin, err := cfg.Origin()
	if err != nil {
		return nil, err
	}

	robots := crawler.NewAllowAllPolicy()
	if cfg.RespectRobots {
		robots = crawler.LoadRobotsPolicy(ctx, origin, cfg.UserAgent, cfg.Timeout, logger)
	}

	fetcher, err := crawler.NewCollyFetcher(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}
	retrying := crawler.NewRetryingFetcher(fetcher, crawler.NewExponentialRetryPolicy(), logger)

	visited := crawler.NewVisitSet()
	policy := crawler.NewURLPolicy(origin, visited, robots, nil, cfg.URLPattern, logger)
	frontier := crawler.NewFrontier(cfg, retrying, policy, visited, logger)

	sink := storage.NewJSONLStore(
		viper.GetString("scraper.output"),
		viper.GetBool("scraper.append"),
		logger,
	)

	return pipeline.New(frontier, extract.New(logger), enrich.New(), sink, logger), nil
}
