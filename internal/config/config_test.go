package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/events")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("BASE_PATH", "/community-events/")

	cfg := LoadConfig()

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "/community-events", cfg.BasePath)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, StorageLocal, cfg.StorageDriver)
	require.Equal(t, "/community-events/login", cfg.Path("/login"))
	require.NoError(t, cfg.Validate())
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := &Config{
		JWTSecret:     "short",
		SessionTTL:    time.Hour,
		StorageDriver: StorageR2,
		BasePath:      "no-slash",
	}

	err := cfg.Validate()

	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
	require.Contains(t, err.Error(), "JWT_SECRET")
	require.Contains(t, err.Error(), "R2_ACCOUNT_ID")
	require.Contains(t, err.Error(), "BASE_PATH")
}

func TestValidateUnknownStorageDriver(t *testing.T) {
	cfg := &Config{
		DatabaseURL:   "postgres://localhost/events",
		JWTSecret:     strings.Repeat("s", 32),
		SessionTTL:    time.Hour,
		StorageDriver: "ftp",
	}

	require.ErrorContains(t, cfg.Validate(), `unknown STORAGE_DRIVER "ftp"`)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")
	require.Equal(t, 3, getEnvInt("REDIS_DB", 3))
}
