package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Missing file yields defaults", func(t *testing.T) {
		// Given: a path with no config file
		path := filepath.Join(t.TempDir(), "config.yml")

		// When: loading the config
		conf, err := Load(path)

		// Then: every default is applied
		require.NoError(t, err)
		assert.Equal(t, &Config{
			LogLevel: "warn",
			Redis: Redis{
				Enabled: false,
				Host:    "localhost",
				Port:    "6379",
				TTL:     time.Hour,
			},
		}, conf)
	})

	t.Run("File values override defaults", func(t *testing.T) {
		// Given: a config file enabling the redis mirror
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\n" +
			"redis:\n" +
			"  enabled: true\n" +
			"  host: cache\n" +
			"  ttl: 10m\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading the config
		conf, err := Load(path)

		// Then: file values win and unset keys keep their defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 10*time.Minute, conf.Redis.TTL)
	})

	t.Run("Malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("redis: [unterminated"), 0o600))

		_, err := Load(path)

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(path) })
	})
}
