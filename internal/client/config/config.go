package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the PlanPlant CLI.
//
// RequestTimeout of zero means backend calls have no deadline, which is
// how the web client behaves.
type Config struct {
	APIURL         string
	APIVersion     string
	StorePath      string
	ScreenWidth    float64
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:3100/"
	c.APIVersion = "api_v1"
	c.StorePath = "planplant.db"
	c.ScreenWidth = 390
	c.RequestTimeout = 0
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the optional JSON file and the
// process command line.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig with explicit arguments.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
