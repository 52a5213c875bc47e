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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: "production"
logging:
  level: "debug"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections keep their defaults
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	path := writeConfigFile(t, `
server:
  port: "9090"
database:
  host: "localhost"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfigRejectsBadDurations(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRATION", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "app"
	cfg.Database.Password = "secret"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "tutorlink"

	assert.Equal(t,
		"postgres://app:secret@db:5433/tutorlink?sslmode=disable",
		cfg.GetPostgresConnectionString(),
	)
}
