package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/zheye/internal/flagx"
	"github.com/dmitrijs2005/zheye/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-value fields left out of the file keep the earlier layer's value.
type JsonConfig struct {
	BaseURL        string          `json:"base_url"`
	ICode          string          `json:"icode"`
	DBPath         string          `json:"db_path"`
	RequestTimeout timex.Duration  `json:"request_timeout"`
	LoadingDelay   *timex.Duration `json:"loading_delay"`
	PageSize       int             `json:"page_size"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read and unmarshal
// errors panic, like the flag parser.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.ICode != "" {
		cfg.ICode = jc.ICode
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	// a zero loading delay is legitimate, so presence is what counts
	if jc.LoadingDelay != nil {
		cfg.LoadingDelay = jc.LoadingDelay.Duration
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
