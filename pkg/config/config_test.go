package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://records.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://records.local", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.RetryCount)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.SubjectsTTL)
	assert.Equal(t, ".unirecords_token", cfg.Auth.TokenPath)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://records.local/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://records.local", cfg.API.BaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://records.local")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("CACHE_SUBJECTS_TTL", "30m")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Cache.SubjectsTTL)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestValidateRejectsMissingBaseURL(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("garbage", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
