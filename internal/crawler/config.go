package crawler

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a crawl run. All values
// originate from Viper so the crawler can be configured via config file,
// env vars, or CLI flags, but the struct itself is decoupled from Viper
// to keep the crawler testable.
type Config struct {
	SeedURL       string
	MaxPages      int
	MaxDepth      int
	Delay         time.Duration
	Timeout       time.Duration
	UserAgent     string
	RespectRobots bool
	URLPattern    string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		SeedURL:       v.GetString("scraper.seed_url"),
		MaxPages:      v.GetInt("scraper.max_pages"),
		MaxDepth:      v.GetInt("scraper.max_depth"),
		Delay:         v.GetDuration("scraper.delay"),
		Timeout:       v.GetDuration("scraper.timeout"),
		UserAgent:     v.GetString("scraper.user_agent"),
		RespectRobots: !v.GetBool("scraper.no_robots"),
		URLPattern:    v.GetString("scraper.url_pattern"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.SeedURL == "" {
		return fmt.Errorf("scraper.seed_url must be set")
	}
	parsed, err := url.Parse(c.SeedURL)
	if err != nil {
		return fmt.Errorf("scraper.seed_url is not a valid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("scraper.seed_url must be absolute with scheme and host")
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("scraper.max_pages must be >= 1")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("scraper.max_depth must be >= 0")
	}
	if c.Delay < 0 {
		return fmt.Errorf("scraper.delay must be >= 0")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be > 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("scraper.user_agent must be set")
	}
	return nil
}

// Origin returns the seed's scheme+host tuple, which bounds the crawl.
func (c Config) Origin() (*url.URL, error) {
	parsed, err := url.Parse(c.SeedURL)
	if err != nil {
		return nil, fmt.Errorf("parse seed url: %w", err)
	}
	return parsed, nil
}
