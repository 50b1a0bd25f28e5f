package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/zheye/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only -b, -k, -d, -t, -p and -l are considered; everything else in args is
// filtered out first via flagx.FilterArgs so other loaders can own their
// flags. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-b", "-k", "-d", "-t", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "base URL of the column API")
	fs.StringVar(&cfg.ICode, "k", cfg.ICode, "shared application key (icode)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "sqlite file holding the session token")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "page size for list endpoints")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
