// Package config loads runtime configuration for the repslog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .toml are decoded with go-toml, everything else as JSON.
//  3. A .env file in the working directory, then REPSLOG_* environment
//     variables (see env.go for the full list).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string    GraphQL endpoint URL
//	-d string    local database path
//	-l string    log level
//	-t duration  request timeout
//
// # File schema
//
// Durations accept strings like "15m" or integer nanoseconds:
//
//	{
//	  "graphql_endpoint": "https://api.example.com/graphql",
//	  "s3_bucket": "repslog-images",
//	  "presign_expiry": "15m",
//	  "time_zone": "America/Chicago"
//	}
//
// The session token is never read from the config file; pass it through
// REPSLOG_SESSION_TOKEN or the CLI login command.
package config
