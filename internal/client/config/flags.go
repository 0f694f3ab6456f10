package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/planplant/internal/flagx"
)

var clientFlags = []string{"-a", "-v", "-s", "-w", "-t", "-l"}

// parseFlags overlays cfg with the client flags found in args. Unknown
// arguments are filtered out first so other flag sets can share the
// command line. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("planplant", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.APIVersion, "v", cfg.APIVersion, "API version prefix")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "cookie jar path")
	fs.Float64Var(&cfg.ScreenWidth, "w", cfg.ScreenWidth, "screen width")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, clientFlags)); err != nil {
		panic(err)
	}

	// -t only overrides when given, so sub-second JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
