package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsvalidation/pkg/config"
)

type parseConfig struct {
	Name    string        `env:"NAME" envDefault:"default"`
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	Tags    []string      `env:"TAGS" envSeparator:","`
}

type requiredConfig struct {
	Value string `env:"VALUE,required"`
}

type cachedConfig struct {
	Value string `env:"CFG_CACHED_VALUE" envDefault:"first"`
}

type fileConfig struct {
	Name string `env:"CFG_TEST_NAME"`
	Port int    `env:"CFG_TEST_PORT"`
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		var cfg parseConfig
		require.NoError(t, config.Parse(&cfg, config.WithEnvironment(map[string]string{})))
		assert.Equal(t, parseConfig{Name: "default", Enabled: true, Timeout: 5 * time.Second}, cfg)
	})

	t.Run("prefixed values", func(t *testing.T) {
		t.Parallel()
		var cfg parseConfig
		err := config.Parse(&cfg,
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{
				"APP_NAME":    "custom",
				"APP_ENABLED": "false",
				"APP_TIMEOUT": "1m",
				"APP_TAGS":    "a,b",
				"NAME":        "ignored",
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, parseConfig{Name: "custom", Timeout: time.Minute, Tags: []string{"a", "b"}}, cfg)
	})

	t.Run("required missing", func(t *testing.T) {
		t.Parallel()
		var cfg requiredConfig
		err := config.Parse(&cfg, config.WithEnvironment(map[string]string{}))
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, config.Parse[parseConfig](nil), config.ErrNilPointer)
	})
}

func TestLoadCachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFG_CACHED_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("CFG_CACHED_VALUE", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "served from cache")

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CFG_TEST_PORT", "")

	require.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)

	t.Setenv("CFG_TEST_NAME", "from-env")
	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg fileConfig
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, "from-env", cfg.Name, "existing variables win")
}

func TestMustLoadPanics(t *testing.T) {
	config.ResetCache()
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	})
}
