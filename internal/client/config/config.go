package config

import (
	"time"
)

// Config holds runtime settings for the repslog CLI.
//
// Fields:
//   - GraphQLEndpoint: URL of the GraphQL data API.
//   - S3*: object store settings; S3BaseEndpoint targets MinIO or another
//     S3-compatible server and switches the client to path-style addressing.
//   - PresignExpiry: lifetime of presigned image URLs.
//   - RequestTimeout: per-request HTTP timeout for the data API.
//   - LocalDBPath: SQLite file holding the saga journal and session metadata.
//   - TimeZone: IANA zone used to normalize entry dates; "Local" uses the host zone.
//   - SessionToken: optional ID token to sign in with at startup.
type Config struct {
	GraphQLEndpoint string
	S3Region        string
	S3Bucket        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string
	PresignExpiry   time.Duration
	RequestTimeout  time.Duration
	LocalDBPath     string
	LogLevel        string
	LogFormat       string
	TimeZone        string
	SessionToken    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GraphQLEndpoint = "http://127.0.0.1:20002/graphql"
	c.S3Region = "us-east-1"
	c.S3Bucket = "repslog"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
	c.PresignExpiry = 15 * time.Minute
	c.RequestTimeout = 30 * time.Second
	c.LocalDBPath = "repslog.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.TimeZone = "Local"
}

// Location resolves TimeZone. Empty and "Local" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
