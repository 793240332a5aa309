package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsbot/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
telegram:
  chat_id: -100123
  pacing: 3s
store:
  type: bolt
  path: /tmp/newsbot.bolt
  max_open_conns: 4
  conn_max_lifetime: 30m
schedule:
  interval: 2m
fetch:
  timeout: 15s
  max_attempts: 3
  retry_delay: 500ms
sources:
  - id: AGENCY_C
    url: https://example.com/mvd/
    max_attempts: 4
    headers:
      Referer: https://example.com
server:
  enabled: true
  listen: ":9090"
  timeout: 45s
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, int64(-100123), cfg.Telegram.ChatID)
		assert.Equal(t, 3*time.Second, cfg.Telegram.Pacing)
		assert.Equal(t, "bolt", cfg.Store.Type)
		assert.Equal(t, "/tmp/newsbot.bolt", cfg.Store.Path)
		assert.Equal(t, 4, cfg.Store.MaxOpenConns)
		assert.Equal(t, 30*time.Minute, cfg.Store.ConnMaxLifetime)
		assert.Equal(t, 2*time.Minute, cfg.Schedule.Interval)
		assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, 500*time.Millisecond, cfg.Fetch.RetryDelay)

		require.Len(t, cfg.Sources, 3)
		a, ok := cfg.Source(domain.AgencyA)
		require.True(t, ok)
		assert.Equal(t, 3, a.MaxAttempts, "inherits fetch.max_attempts")
		c, ok := cfg.Source(domain.AgencyC)
		require.True(t, ok)
		assert.Equal(t, "https://example.com/mvd/", c.URL)
		assert.Equal(t, 4, c.MaxAttempts)
		assert.Equal(t, map[string]string{"Referer": "https://example.com"}, c.Headers)

		listen, timeout := cfg.GetServerConfig()
		assert.True(t, cfg.Server.Enabled)
		assert.Equal(t, ":9090", listen)
		assert.Equal(t, 45*time.Second, timeout)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "telegram:\n  chat_id: 1\n"))
		require.NoError(t, err)

		assert.Equal(t, 10*time.Second, cfg.Telegram.Pacing)
		assert.Equal(t, "Читать в источнике...", cfg.Telegram.ReadMoreText)
		assert.Equal(t, "sqlite", cfg.Store.Type)
		assert.Contains(t, cfg.Store.DSN, "newsbot.db")
		assert.Equal(t, 1, cfg.Store.MaxOpenConns)
		assert.Zero(t, cfg.Store.ConnMaxLifetime)
		assert.Equal(t, 300*time.Second, cfg.Schedule.Interval)
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, 2, cfg.Fetch.MaxAttempts)
		assert.Equal(t, time.Second, cfg.Fetch.RetryDelay)
		assert.Equal(t, "images", cfg.Fetch.ImagesDir)
		assert.Equal(t, 5, cfg.Fetch.KeepImages)
		assert.Contains(t, cfg.Fetch.UserAgent, "Mozilla/5.0")
		assert.False(t, cfg.Server.Enabled)
		assert.Equal(t, ":8080", cfg.Server.Listen)

		require.Len(t, cfg.Sources, 3)
		for i, def := range DefaultSources() {
			assert.Equal(t, def.ID, cfg.Sources[i].ID)
			assert.Equal(t, def.URL, cfg.Sources[i].URL)
			assert.Equal(t, 2, cfg.Sources[i].MaxAttempts)
		}
	})

	t.Run("no file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Len(t, cfg.Sources, 3)
		assert.Equal(t, 300*time.Second, cfg.Schedule.Interval)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("TEST_NEWSBOT_TOKEN", "secret-token")
		cfg, err := Load(writeConfig(t, "telegram:\n  token: ${TEST_NEWSBOT_TOKEN}\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret-token", cfg.Telegram.Token)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tbl := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown store", "store:\n  type: redis\n", `store.type "redis" is not supported`},
		{"short interval", "schedule:\n  interval: 10ms\n", "schedule.interval must be at least 1 second"},
		{"negative attempts", "fetch:\n  max_attempts: -1\n", "fetch.max_attempts must be at least 1"},
		{"short timeout", "fetch:\n  timeout: 1ms\n", "fetch.timeout must be at least 1 second"},
		{"unknown source", "sources:\n  - id: AGENCY_X\n    url: http://example.com\n", `source id "AGENCY_X" is unknown`},
		{"duplicate source", "sources:\n  - id: AGENCY_A\n  - id: AGENCY_A\n", `duplicate source id "AGENCY_A"`},
		{"bad source attempts", "sources:\n  - id: AGENCY_B\n    max_attempts: -2\n", "source AGENCY_B max_attempts must be at least 1"},
		{"negative store conns", "store:\n  max_open_conns: -1\n", "store.max_open_conns must be at least 1"},
		{"negative store lifetime", "store:\n  conn_max_lifetime: -1s\n", "store.conn_max_lifetime must be non-negative"},
		{"negative pacing", "telegram:\n  pacing: -1s\n", "telegram.pacing must be non-negative"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validate config")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Source(t *testing.T) {
	cfg := &Config{Sources: DefaultSources()}

	src, ok := cfg.Source(domain.AgencyB)
	require.True(t, ok)
	assert.Equal(t, "https://ykt.sledcom.ru/", src.URL)

	_, ok = cfg.Source(domain.SourceID("nope"))
	assert.False(t, ok)
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}
