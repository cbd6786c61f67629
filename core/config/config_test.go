package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio2ie/biblio/core/config"
)

type sample struct {
	URL     string        `env:"CONFIG_TEST_URL" envDefault:"http://localhost"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"2s"`
}

type required struct {
	Secret string `env:"CONFIG_TEST_REQUIRED_SECRET,required"`
}

type cached struct {
	Name string `env:"CONFIG_TEST_CACHED"`
}

func TestParseDefaults(t *testing.T) {
	var cfg sample
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, "http://localhost", cfg.URL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("CONFIG_TEST_TIMEOUT", "750ms")

	var cfg sample
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
}

func TestParseRequired(t *testing.T) {
	var cfg required
	assert.ErrorIs(t, config.Parse(&cfg), config.ErrParsing)
}

func TestLoadCaches(t *testing.T) {
	t.Setenv("CONFIG_TEST_CACHED", "first")

	var a cached
	require.NoError(t, config.Load(&a))

	t.Setenv("CONFIG_TEST_CACHED", "second")
	var b cached
	require.NoError(t, config.Load(&b))

	assert.Equal(t, "first", b.Name)
}
