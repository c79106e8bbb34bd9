package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}
	with := func(fn func(c *Config)) *Config {
		c := base()
		fn(c)
		return c
	}

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://10.0.0.5:5000", "-p", "25", "-t", "5", "-l", "debug", "-f", "console"},
			expected: with(func(c *Config) {
				c.ServerURL = "http://10.0.0.5:5000"
				c.PageSize = 25
				c.RequestTimeout = 5 * time.Second
				c.LogLevel = "debug"
				c.LogFormat = "console"
			})},
		{name: "config source flags ignored", args: []string{"cmd", "-c", "x.json", "-e", "y.env"}, expected: base()},
		{name: "timeout untouched without -t", args: []string{"cmd", "-p", "5"},
			expected: with(func(c *Config) { c.PageSize = 5 })},
		{name: "incorrect page size", args: []string{"cmd", "-p", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := base()

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
