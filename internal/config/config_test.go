package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  host: "127.0.0.1"
  port: 8080
database:
  host: "db"
  port: 5432
  user: "freight"
  password: "secret"
  database: "freight_booking"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
storage:
  upload_dir: "/tmp/uploads"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Success with defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddress())
		assert.Equal(t, "postgres://freight:secret@db:5432/freight_booking?sslmode=disable", cfg.GetDatabaseConnectionString())
		assert.Equal(t, "local", cfg.Storage.Type)
		assert.Equal(t, "/uploads", cfg.Storage.BaseURL)
		assert.Equal(t, int64(5), cfg.Storage.MaxFileSize)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "0 */14 * * * *", cfg.Scheduler.KeepAlive)
		assert.Empty(t, cfg.Scheduler.MigrateBookingStructure)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("DB_HOST", "override-host")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("KEEP_ALIVE_URL", "https://example.test/health")
		t.Setenv("LOG_FORMAT", "json")

		cfg, err := Load(writeConfig(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "override-host", cfg.Database.Host)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "https://example.test/health", cfg.Scheduler.KeepAliveURL)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("Short JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		_, err := Load(writeConfig(t, validYAML))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret must be at least 32 characters")
	})

	t.Run("Unsupported storage", func(t *testing.T) {
		_, err := Load(writeConfig(t, validYAML+"  type: \"s3\"\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported storage type")
	})
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("health"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("bookings.create"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("unknown.route"))
}
