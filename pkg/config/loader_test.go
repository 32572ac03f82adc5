package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocert/notify/pkg/config"
)

type testConfig struct {
	Host    string        `env:"CONFIG_TEST_HOST" envDefault:"localhost"`
	Port    int           `env:"CONFIG_TEST_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
}

type overriddenConfig struct {
	Value string `env:"CONFIG_TEST_VALUE" envDefault:"fallback"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("environment overrides default", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_VALUE", "from-env")

		var cfg overriddenConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Value)
	})

	t.Run("cached across calls", func(t *testing.T) {
		var first, second testConfig
		require.NoError(t, config.Load(&first))
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}
