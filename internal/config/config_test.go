package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	path := writeConfigFile(t, `
database:
  url: "postgres://localhost/cms"
server:
  port: ":9090"
auth:
  token_ttl_minutes: 45
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/cms", cfg.Database.URL)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 45, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoadConfig_DefaultTokenTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	path := writeConfigFile(t, `
database:
  url: "postgres://localhost/cms"
server:
  port: ":8080"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
}

func TestLoadConfig_MissingSecretIsFatal(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConfigFile(t, `
server:
  port: ":8080"
`)

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
