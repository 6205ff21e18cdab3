package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/trimlight/internal/errs"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvClientID, EnvClientSecret, EnvAPIURL, EnvDevice} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trimlight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvClientID, "id-from-env")
	t.Setenv(EnvClientSecret, "secret-from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "id-from-env", cfg.API.ClientID)
	assert.Equal(t, "secret-from-env", cfg.API.ClientSecret)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout.Duration())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "main.lua", cfg.Script)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORCH_SECRET", "s3cret")

	path := writeConfig(t, `
api:
  base_url: http://localhost:9000/trimlight
  client_id: porch
  client_secret: ${PORCH_SECRET}
  timeout: 5s
device: dev-1
log:
  level: debug
  json: true
script: ${SCRIPT_PATH:scripts/evening.lua}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/trimlight", cfg.API.BaseURL)
	assert.Equal(t, "porch", cfg.API.ClientID)
	assert.Equal(t, "s3cret", cfg.API.ClientSecret)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout.Duration())
	assert.Equal(t, "dev-1", cfg.Device)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "scripts/evening.lua", cfg.Script)
}

func TestLoad_EnvFillsEmptyFileValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvClientSecret, "env-secret")
	t.Setenv(EnvDevice, "env-device")

	path := writeConfig(t, "api:\n  client_id: file-id\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-id", cfg.API.ClientID)
	assert.Equal(t, "env-secret", cfg.API.ClientSecret)
	assert.Equal(t, "env-device", cfg.Device)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "api:\n  timeout: soon\n"))
	assert.Error(t, err)
}

func TestValidate_MissingCredentials(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	err = cfg.Validate()
	assert.ErrorIs(t, err, errs.ErrMissingCredentials)
	assert.Contains(t, err.Error(), EnvClientID)

	cfg.API.ClientID = "id"
	err = cfg.Validate()
	assert.ErrorIs(t, err, errs.ErrMissingCredentials)
	assert.Contains(t, err.Error(), EnvClientSecret)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TL_SET", "value")
	t.Setenv("TL_EMPTY", "")

	assert.Equal(t, "value", expandEnvVars("${TL_SET}"))
	assert.Equal(t, "value", expandEnvVars("${TL_SET:fallback}"))
	assert.Equal(t, "fallback", expandEnvVars("${TL_EMPTY:fallback}"))
	assert.Equal(t, "", expandEnvVars("${TL_EMPTY}"))
	assert.Equal(t, "a-value-b", expandEnvVars("a-${TL_SET}-b"))
}
