package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/repslog/internal/flagx"
	"github.com/dmitrijs2005/repslog/internal/timex"
	"github.com/pelletier/go-toml/v2"
)

// FileConfig is a DTO used exclusively for config file decoding. Durations
// use timex.Duration so files can say "15m" or give integer nanoseconds.
// Empty values leave the corresponding Config field unchanged.
type FileConfig struct {
	GraphQLEndpoint string         `json:"graphql_endpoint" toml:"graphql_endpoint"`
	S3Region        string         `json:"s3_region" toml:"s3_region"`
	S3Bucket        string         `json:"s3_bucket" toml:"s3_bucket"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint" toml:"s3_base_endpoint"`
	S3AccessKey     string         `json:"s3_access_key" toml:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key" toml:"s3_secret_key"`
	PresignExpiry   timex.Duration `json:"presign_expiry" toml:"presign_expiry"`
	RequestTimeout  timex.Duration `json:"request_timeout" toml:"request_timeout"`
	LocalDBPath     string         `json:"local_db_path" toml:"local_db_path"`
	LogLevel        string         `json:"log_level" toml:"log_level"`
	LogFormat       string         `json:"log_format" toml:"log_format"`
	TimeZone        string         `json:"time_zone" toml:"time_zone"`
}

// parseFile overlays cfg with values from the file named by -c/-config.
// The format follows the extension: .toml is read with go-toml, anything
// else as JSON. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	fc, err := readFile(path)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func readFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.GraphQLEndpoint, fc.GraphQLEndpoint)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, fc.S3AccessKey)
	setString(&cfg.S3SecretKey, fc.S3SecretKey)
	setString(&cfg.LocalDBPath, fc.LocalDBPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.TimeZone, fc.TimeZone)
	if fc.PresignExpiry.Duration > 0 {
		cfg.PresignExpiry = fc.PresignExpiry.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
