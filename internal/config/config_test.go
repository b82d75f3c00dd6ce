package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[server]
http_port = 9090
timezone = "Europe/Moscow"

[database]
host = "db"
dbname = "parking"

[payment]
url = "http://payments:8080"

[booking]
confirmation_attempts = 3
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PARKING_DB_HOST", "db-override")
	t.Setenv("PARKING_REDIS_ENABLED", "true")

	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db-override", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Booking.ConfirmationAttempts)
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
	assert.Contains(t, cfg.Database.DSN(), "host=db-override port=5432")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PARKING_HTTP_PORT=7070\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PARKING_HTTP_PORT") })

	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
}

func TestLoad_Errors(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("bad env int", func(t *testing.T) {
		t.Setenv("PARKING_DB_PORT", "five")
		_, err := Load(writeConfig(t, sampleTOML))
		assert.ErrorContains(t, err, "PARKING_DB_PORT")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.Payment.URL = "http://payments"
		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"timezone", func(c *Config) { c.Server.Timezone = "Mars/Olympus" }},
		{"payment url", func(c *Config) { c.Payment.URL = "" }},
		{"confirmation attempts", func(c *Config) { c.Booking.ConfirmationAttempts = 0 }},
		{"rate limit", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Burst = 0 }},
		{"redis addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	c := valid()
	c.Payment.URL = ""
	c.Payment.ApproveAll = true
	assert.NoError(t, c.Validate())
}
