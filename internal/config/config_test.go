package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `api:
  environment: "development"
  port: "8080"
  base_url: "localhost:8080"
  jwt_signing_key: "secret"
  allowed_cors_domains:
    - "http://localhost:3000"
gin:
  mode: "debug"
postgres:
  host: "localhost"
  port: "5432"
  user: "postgres"
  password: "postgres"
  db: "tournaments"
  ssl_mode: "disable"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "development", conf.API.Environment)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "debug", conf.Gin.Mode)
	assert.Equal(t, "tournaments", conf.Postgres.DB)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db.internal")

	conf, err := Load(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, "db.internal", conf.Postgres.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
