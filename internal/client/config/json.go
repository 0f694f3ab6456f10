package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/planplant/internal/flagx"
	"github.com/dmitrijs2005/planplant/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" from "zero" so a partial file only overrides what it names.
type JsonConfig struct {
	APIURL         *string         `json:"api_url"`
	APIVersion     *string         `json:"api_version"`
	StorePath      *string         `json:"store_path"`
	ScreenWidth    *float64        `json:"screen_width"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// It panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIURL != nil {
		cfg.APIURL = *jc.APIURL
	}
	if jc.APIVersion != nil {
		cfg.APIVersion = *jc.APIVersion
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.ScreenWidth != nil {
		cfg.ScreenWidth = *jc.ScreenWidth
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
