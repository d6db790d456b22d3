package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/testimony/pkg/config"
)

type toastConfig struct {
	MaxVisible int           `env:"TOAST_MAX_VISIBLE" envDefault:"3"`
	ExitDelay  time.Duration `env:"TOAST_EXIT_DELAY" envDefault:"300ms"`
}

type requiredConfig struct {
	Name string `env:"NAME,required"`
}

type cachedConfig struct {
	Value string `env:"CONFIG_TEST_CACHED" envDefault:"default"`
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		var cfg toastConfig
		require.NoError(t, config.Parse(&cfg, config.WithEnvironment(map[string]string{})))
		assert.Equal(t, 3, cfg.MaxVisible)
		assert.Equal(t, 300*time.Millisecond, cfg.ExitDelay)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()
		var cfg toastConfig
		require.NoError(t, config.Parse(&cfg, config.WithEnvironment(map[string]string{
			"TOAST_MAX_VISIBLE": "5",
			"TOAST_EXIT_DELAY":  "1s",
		})))
		assert.Equal(t, 5, cfg.MaxVisible)
		assert.Equal(t, time.Second, cfg.ExitDelay)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		var cfg requiredConfig
		require.NoError(t, config.Parse(&cfg,
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_NAME": "testimony"}),
		))
		assert.Equal(t, "testimony", cfg.Name)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		var cfg requiredConfig
		err := config.Parse(&cfg, config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, config.Parse[toastConfig](nil), config.ErrNilPointer)
	})
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("CONFIG_TEST_CACHED", "first")

	var a cachedConfig
	require.NoError(t, config.Load(&a))
	assert.Equal(t, "first", a.Value)

	t.Setenv("CONFIG_TEST_CACHED", "second")
	var b cachedConfig
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value)
}
