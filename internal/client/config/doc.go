// Package config loads runtime configuration for the PlanPlant CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the PlanPlant backend (with trailing slash)
//	-v string   API version path prefix
//	-s string   path of the sqlite cookie jar (":memory:" keeps it in RAM)
//	-w float    screen (track) width in distance units
//	-t int      request timeout in seconds, 0 disables it
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "api_url": "https://planplant.herokuapp.com/",
//	  "api_version": "api_v1",
//	  "store_path": "planplant.db",
//	  "screen_width": 390,
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
//
// request_timeout accepts a duration string or integer nanoseconds.
// Fields missing from the JSON keep their defaults.
package config
