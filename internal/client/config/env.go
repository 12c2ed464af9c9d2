package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGraphQLEndpoint = "REPSLOG_GRAPHQL_ENDPOINT"
	EnvS3Region        = "REPSLOG_S3_REGION"
	EnvS3Bucket        = "REPSLOG_S3_BUCKET"
	EnvS3BaseEndpoint  = "REPSLOG_S3_BASE_ENDPOINT"
	EnvS3AccessKey     = "REPSLOG_S3_ACCESS_KEY"
	EnvS3SecretKey     = "REPSLOG_S3_SECRET_KEY"
	EnvPresignExpiry   = "REPSLOG_PRESIGN_EXPIRY"
	EnvRequestTimeout  = "REPSLOG_REQUEST_TIMEOUT"
	EnvLocalDBPath     = "REPSLOG_LOCAL_DB_PATH"
	EnvLogLevel        = "REPSLOG_LOG_LEVEL"
	EnvLogFormat       = "REPSLOG_LOG_FORMAT"
	EnvTimeZone        = "REPSLOG_TIME_ZONE"
	EnvSessionToken    = "REPSLOG_SESSION_TOKEN"
)

// dotenvFiles are loaded, if present, before reading the environment.
// Variables already set in the process win over file values.
var dotenvFiles = []string{".env"}

// parseEnv overlays cfg with REPSLOG_* variables. Invalid durations panic,
// like malformed flags do.
func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	envString(&cfg.GraphQLEndpoint, EnvGraphQLEndpoint)
	envString(&cfg.S3Region, EnvS3Region)
	envString(&cfg.S3Bucket, EnvS3Bucket)
	envString(&cfg.S3BaseEndpoint, EnvS3BaseEndpoint)
	envString(&cfg.S3AccessKey, EnvS3AccessKey)
	envString(&cfg.S3SecretKey, EnvS3SecretKey)
	envString(&cfg.LocalDBPath, EnvLocalDBPath)
	envString(&cfg.LogLevel, EnvLogLevel)
	envString(&cfg.LogFormat, EnvLogFormat)
	envString(&cfg.TimeZone, EnvTimeZone)
	envString(&cfg.SessionToken, EnvSessionToken)
	envDuration(&cfg.PresignExpiry, EnvPresignExpiry)
	envDuration(&cfg.RequestTimeout, EnvRequestTimeout)
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
