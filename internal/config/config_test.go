package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Polling.AssessmentInterval)
	assert.Equal(t, 20*time.Second, cfg.Polling.QueueInterval)
	assert.Equal(t, "file", cfg.Storage.Backend)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORTAL_API_BASE_URL", "https://portal.example.com")
	t.Setenv("ASSESSMENT_POLL_INTERVAL", "30s")
	t.Setenv("SANDBOX_PORT", "9090")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.com", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Polling.AssessmentInterval)
	assert.Equal(t, "0.0.0.0:9090", cfg.Sandbox.GetSandboxAddr())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api":{"base_url":"http://staging:8081"}}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://staging:8081", cfg.API.BaseURL)
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
