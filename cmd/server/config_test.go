package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/testimony/pkg/config"
	"github.com/dmitrymomot/testimony/pkg/environment"
	"github.com/dmitrymomot/testimony/pkg/i18n"
)

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	var cfg Config
	require.NoError(t, config.Parse(&cfg, config.WithEnvironment(map[string]string{
		"SESSION_SECRET": "a-secret-that-is-long-enough-for-hmac",
	})))

	assert.Equal(t, environment.Development, cfg.Env)
	assert.Equal(t, []string{"en", "es", "fr", "de", "pt", "uk"}, cfg.Locales)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 3, cfg.Toast.MaxVisible)
	assert.Equal(t, 300*time.Millisecond, cfg.Toast.ExitDelay)
	assert.Equal(t, 5*time.Second, cfg.Toast.AutoDismiss)
	assert.Equal(t, 30, cfg.Notify.RequestsPerMinute)
}

func TestConfig_Overrides(t *testing.T) {
	t.Parallel()

	var cfg Config
	require.NoError(t, config.Parse(&cfg, config.WithEnvironment(map[string]string{
		"APP_ENV":            "prod",
		"SESSION_SECRET":     "a-secret-that-is-long-enough-for-hmac",
		"SESSION_STORE":      "redis",
		"SUPPORTED_LOCALES":  "en,uk",
		"TOAST_AUTO_DISMISS": "0s",
		"NOTIFY_RATE_LIMIT":  "5",
	})))

	assert.Equal(t, environment.Production, cfg.Env)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, []string{"en", "uk"}, cfg.Locales)
	assert.Zero(t, cfg.Toast.AutoDismiss)
	assert.Equal(t, 5, cfg.Notify.RequestsPerMinute)
}

func TestConfig_RequiresSecret(t *testing.T) {
	t.Parallel()

	var cfg Config
	assert.Error(t, config.Parse(&cfg, config.WithEnvironment(map[string]string{})))
}

func TestLoadRouteTable(t *testing.T) {
	t.Parallel()

	locales := i18n.MustLocales("en", "uk")

	t.Run("built-in", func(t *testing.T) {
		t.Parallel()
		table, err := loadRouteTable("", locales)
		require.NoError(t, err)
		rule, ok := table.Resolve("/uk/admin/users")
		require.True(t, ok)
		assert.Equal(t, "/admin/users", rule.Pattern)
	})

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  - pattern: /vault\n    requires_auth: true\n"), 0o600))

		table, err := loadRouteTable(path, locales)
		require.NoError(t, err)
		rule, ok := table.Resolve("/vault/2024")
		require.True(t, ok)
		assert.True(t, rule.RequiresAuth)
		_, ok = table.Resolve("/account")
		assert.False(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := loadRouteTable(filepath.Join(t.TempDir(), "nope.yaml"), locales)
		assert.Error(t, err)
	})
}
