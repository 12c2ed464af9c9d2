package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDotenv(t *testing.T, files ...string) {
	t.Helper()
	orig := dotenvFiles
	t.Cleanup(func() { dotenvFiles = orig })
	dotenvFiles = files
}

func TestParseEnv_OverlaysVariables(t *testing.T) {
	withDotenv(t)
	t.Setenv(EnvGraphQLEndpoint, "https://env/graphql")
	t.Setenv(EnvS3BaseEndpoint, "")
	t.Setenv(EnvPresignExpiry, "90s")
	t.Setenv(EnvSessionToken, "tok")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://env/graphql", cfg.GraphQLEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.S3BaseEndpoint, "empty variable keeps the previous value")
	assert.Equal(t, 90*time.Second, cfg.PresignExpiry)
	assert.Equal(t, "tok", cfg.SessionToken)
}

func TestParseEnv_InvalidDurationPanics(t *testing.T) {
	withDotenv(t)
	t.Setenv(EnvRequestTimeout, "soon")

	require.Panics(t, func() { parseEnv(&Config{}) })
}

func TestParseEnv_LoadsDotenvWithoutOverridingProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		EnvS3Bucket+"=from-file\n"+EnvLogLevel+"=debug\n"), 0o600))
	withDotenv(t, path, filepath.Join(t.TempDir(), "absent.env"))

	t.Setenv(EnvLogLevel, "warn")
	// godotenv sets variables process-wide; t.Setenv restores them afterwards.
	t.Setenv(EnvS3Bucket, "")
	require.NoError(t, os.Unsetenv(EnvS3Bucket))

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "from-file", cfg.S3Bucket)
	assert.Equal(t, "warn", cfg.LogLevel)
}
