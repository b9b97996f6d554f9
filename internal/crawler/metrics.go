package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// pagesAccepted tracks pages accepted into the corpus.
	pagesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_pages_accepted_total",
		Help: "The total number of HTML pages accepted into the corpus.",
	})
	// fetchAttempts tracks frontier entries that reached the fetcher.
	fetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_fetch_attempts_total",
		Help: "The total number of fetch attempts dispatched by the frontier.",
	})
	// fetchErrors tracks fetches that failed after retries.
	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_fetch_errors_total",
		Help: "The total number of fetches that failed and dropped their frontier entry.",
	})
	// fetchRetries tracks transport-level retry attempts.
	fetchRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_fetch_retries_total",
		Help: "The total number of transient-failure retries at the transport layer.",
	})
	// linksDiscovered tracks hyperlinks found on accepted pages.
	linksDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitescraper_links_discovered_total",
		Help: "The total number of links discovered and enqueued.",
	})
)
