// Package config initializes application configuration via Viper,
// unifying config files, environment variables, and CLI flags.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultUserAgent identifies the scraper consistently for page fetches
// and the robots permission check.
const DefaultUserAgent = "Mozilla/5.0 (compatible; AI-Collection-Bot/1.0)"

// InitConfig sets defaults, config search paths, and env binding. It is
// called once at startup; a missing config file is not an error.
func InitConfig() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/sitescraper/")
	viper.AddConfigPath("$HOME/.sitescraper")

	viper.SetDefault("scraper.user_agent", DefaultUserAgent)
	viper.SetDefault("scraper.max_pages", 100)
	viper.SetDefault("scraper.max_depth", 5)
	viper.SetDefault("scraper.delay", "1s")
	viper.SetDefault("scraper.timeout", "10s")
	viper.SetDefault("scraper.output", "output.jsonl")
	viper.SetDefault("scraper.url_pattern", "")
	viper.SetDefault("scraper.no_robots", false)
	viper.SetDefault("scraper.append", false)
	viper.SetDefault("scraper.metrics_addr", "")
	viper.SetDefault("verbose", false)

	viper.SetEnvPrefix("SITESCRAPER") // e.g. SITESCRAPER_SCRAPER_MAX_PAGES=50
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Missing config files are fine; defaults, env vars, and flags carry
	// the configuration. Parse errors surface when values are read.
	_ = viper.ReadInConfig()
}
