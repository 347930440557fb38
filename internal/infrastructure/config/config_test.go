package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	keys := []string{
		"CP_APP_NAME",
		"CP_APP_ENV",
		"CP_APP_PORT",
		"CP_API_BASE_URL",
		"CP_API_TIMEOUT",
		"CP_POSTAL_BASE_URL",
		"CP_CACHE_DRIVER",
		"CP_CACHE_TTL",
		"CP_LISTS_UNITS_PAGE_SIZE",
		"CP_LISTS_SEARCH_DEBOUNCE",
		"CP_HTTP_CORS_ALLOW_ORIGINS",
		"CP_METRICS_ENABLED",
		"CP_TELEMETRY_ENABLED",
		"CP_TELEMETRY_SAMPLING_RATIO",
	}
	originalEnv := make(map[string]string, len(keys))
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "constructpro-dashboard", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "https://brasilapi.com.br", cfg.Postal.BaseURL)
		assert.Equal(t, "memory", cfg.Cache.Driver)
		assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
		assert.Equal(t, 20, cfg.Lists.CustomersPageSize)
		assert.Equal(t, 300*time.Millisecond, cfg.Lists.SearchDebounce)
		assert.Equal(t, 5, cfg.Lists.MaxVisiblePages)
		assert.Equal(t, "/login", cfg.Identity.SignInURL)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.False(t, cfg.Metrics.Enabled)
		assert.True(t, cfg.Telemetry.Enabled)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Empty(t, cfg.Telemetry.CollectorEndpoint)
	})

	t.Run("loads values from environment variables with CP prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("CP_APP_NAME", "test-app")
		os.Setenv("CP_APP_PORT", "9000")
		os.Setenv("CP_API_BASE_URL", "http://api.test:8000")
		os.Setenv("CP_API_TIMEOUT", "5s")
		os.Setenv("CP_CACHE_DRIVER", "redis")
		os.Setenv("CP_CACHE_TTL", "1m")
		os.Setenv("CP_LISTS_UNITS_PAGE_SIZE", "50")
		os.Setenv("CP_LISTS_SEARCH_DEBOUNCE", "500ms")
		os.Setenv("CP_METRICS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "http://api.test:8000", cfg.API.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.Equal(t, "redis", cfg.Cache.Driver)
		assert.Equal(t, time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 50, cfg.Lists.PageSize("units"))
		assert.Equal(t, 20, cfg.Lists.PageSize("sales"))
		assert.Equal(t, 500*time.Millisecond, cfg.Lists.SearchDebounce)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("rejects unknown cache driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("CP_CACHE_DRIVER", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.driver")
	})

	t.Run("rejects page size out of range", func(t *testing.T) {
		clearEnv()
		os.Setenv("CP_LISTS_UNITS_PAGE_SIZE", "500")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "units_page_size")
	})

	t.Run("telemetry from environment", func(t *testing.T) {
		clearEnv()
		os.Setenv("CP_TELEMETRY_ENABLED", "false")
		os.Setenv("CP_TELEMETRY_SAMPLING_RATIO", "0.25")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Equal(t, 0.25, cfg.Telemetry.SamplingRatio)

		os.Setenv("CP_TELEMETRY_SAMPLING_RATIO", "2")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})

	t.Run("rejects invalid upstream URL", func(t *testing.T) {
		clearEnv()
		os.Setenv("CP_POSTAL_BASE_URL", "not a url")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postal.base_url")
	})

	t.Run("production requires https upstream", func(t *testing.T) {
		clearEnv()
		os.Setenv("CP_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "https")

		os.Setenv("CP_API_BASE_URL", "https://api.constructpro.com.br")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.Addr())
}
