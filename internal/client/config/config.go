package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the column client.
type Config struct {
	// BaseURL is the API root every request path is resolved against.
	BaseURL string
	// ICode is the shared application key appended to every request.
	ICode string
	// DBPath is the sqlite file holding the durable session token.
	DBPath string
	// RequestTimeout bounds a single HTTP round trip.
	RequestTimeout time.Duration
	// LoadingDelay is the trailing delay before the loading flag clears.
	LoadingDelay time.Duration
	// PageSize is used by list endpoints and the load-more pager.
	PageSize int
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://apis.imooc.com/api/"
	c.ICode = ""
	c.DBPath = "data/zheye.db"
	c.RequestTimeout = 15 * time.Second
	c.LoadingDelay = time.Second
	c.PageSize = 5
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, JSON (if present) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
