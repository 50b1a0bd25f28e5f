package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/zheye/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "ZHEYE_"

// parseEnv loads an optional dotenv file into the process environment and
// copies any ZHEYE_* variables into cfg.
//
// An explicit -e/-env file must exist (panics otherwise); the implicit ./.env
// is skipped silently when absent. Variables already set in the environment
// win over dotenv values, as godotenv.Load never overrides.
func parseEnv(cfg *Config, args []string) {
	if file := flagx.EnvFileFlags(args); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envPrefix + "BASE_URL"); ok {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv(envPrefix + "ICODE"); ok {
		cfg.ICode = v
	}
	if v, ok := os.LookupEnv(envPrefix + "DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envPrefix + "REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = mustDuration(v)
	}
	if v, ok := os.LookupEnv(envPrefix + "LOADING_DELAY"); ok {
		cfg.LoadingDelay = mustDuration(v)
	}
	if v, ok := os.LookupEnv(envPrefix + "PAGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.PageSize = n
	}
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
