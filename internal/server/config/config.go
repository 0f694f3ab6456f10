// Package config handles configuration for the development stub server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the PlanPlant stub server.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - APIVersion: path prefix of the REST routes.
//   - PublicURL: base URL clients reach the server at; signed upload and
//     object URLs are built on it.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use test defaults in prod.
//   - TokenValidity: session token lifetime.
//   - S3RootUser / S3RootPassword: credentials uploads are signed with.
//   - S3Bucket / S3Region: object storage settings.
type Config struct {
	Addr           string
	APIVersion     string
	PublicURL      string
	SecretKey      string
	TokenValidity  time.Duration
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	LogLevel       string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":3100"
	c.APIVersion = "api_v1"
	c.PublicURL = "http://localhost:3100"
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "planplant"
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
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
