package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 15, cfg.JWTExpirationMinutes)
	assert.Equal(t, 168, cfg.JWTRefreshExpirationHours)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSizeBytes)
	assert.Contains(t, cfg.Database.DSN, "petcare")
	assert.Contains(t, cfg.Database.DSN, "parseTime=True")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_NAME", "petcare_test")
	t.Setenv("JWT_EXPIRATION_MINUTES", "30")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30, cfg.JWTExpirationMinutes)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Contains(t, cfg.Database.DSN, "petcare_test")
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_MINUTES", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}
