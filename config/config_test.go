package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 20, cfg.API.DefaultPageSize)
	assert.Equal(t, 100, cfg.API.MaxPageSize)
	assert.Equal(t, "data/iph.db", cfg.Storage.SQLitePath)
	assert.True(t, cfg.Validation.RequireOfficers)
	assert.True(t, cfg.Validation.RequireMotives)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  port: 9090
  default_page_size: 10
storage:
  sqlite_path: /tmp/test.db
  seed: false
validation:
  require_officers: false
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, 10, cfg.API.DefaultPageSize)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.SQLitePath)
	assert.False(t, cfg.Storage.Seed)
	assert.False(t, cfg.Validation.RequireOfficers)
	assert.True(t, cfg.Validation.RequireMotives, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.API.Port = 0 }},
		{"empty sqlite path", func(c *Config) { c.Storage.SQLitePath = "" }},
		{"page size above max", func(c *Config) { c.API.DefaultPageSize = 500 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
