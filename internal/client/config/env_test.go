package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("process environment", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(EnvServerURL, "https://api.example")
		t.Setenv(EnvPageSize, "12")
		t.Setenv(EnvRequestTimeout, "45s")
		t.Setenv(EnvOnlineCheckInterval, "1m")
		t.Setenv(EnvJournalDSN, ":memory:")
		t.Setenv(EnvSessionToken, "abc")
		t.Setenv(EnvLogLevel, "error")
		t.Setenv(EnvLogFormat, "console")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "https://api.example", cfg.ServerURL)
		assert.Equal(t, 12, cfg.PageSize)
		assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
		assert.Equal(t, time.Minute, cfg.OnlineCheckInterval)
		assert.Equal(t, ":memory:", cfg.JournalDSN)
		assert.Equal(t, "abc", cfg.SessionToken)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "console", cfg.LogFormat)
	})

	t.Run("dotenv file does not override process env", func(t *testing.T) {
		unsetEnv(t, EnvServerURL)
		unsetEnv(t, EnvPageSize)
		t.Setenv(EnvLogLevel, "warn")

		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte(
			EnvServerURL+"=http://dotenv:5000\n"+
				EnvPageSize+"=7\n"+
				EnvLogLevel+"=debug\n"), 0o600))
		os.Args = []string{"testbin", "-e", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://dotenv:5000", cfg.ServerURL)
		assert.Equal(t, 7, cfg.PageSize)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("missing explicit env file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-env-file", filepath.Join(t.TempDir(), "absent.env")}
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("malformed duration panics", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(EnvRequestTimeout, "soon")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
