// Package config loads runtime configuration for the zheye column client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional dotenv file (-e / -env, else ./.env when present) and the
//     ZHEYE_* environment variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the column API
//	-k string   shared application key sent as "icode"
//	-d string   path of the sqlite file holding the session token
//	-t int      request timeout (seconds)
//	-p int      page size for list endpoints
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "base_url": "http://apis.imooc.com/api/",
//	  "icode": "XXXXXXXX",
//	  "db_path": "data/zheye.db",
//	  "request_timeout": "15s",
//	  "loading_delay": "1s",
//	  "page_size": 5,
//	  "log_level": "info"
//	}
package config
