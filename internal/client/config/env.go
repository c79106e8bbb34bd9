package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/packadmin/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvServerURL           = "PACKADMIN_SERVER_URL"
	EnvPageSize            = "PACKADMIN_PAGE_SIZE"
	EnvRequestTimeout      = "PACKADMIN_REQUEST_TIMEOUT"
	EnvOnlineCheckInterval = "PACKADMIN_ONLINE_CHECK_INTERVAL"
	EnvJournalDSN          = "PACKADMIN_JOURNAL_DSN"
	EnvSessionToken        = "PACKADMIN_SESSION_TOKEN"
	EnvLogLevel            = "PACKADMIN_LOG_LEVEL"
	EnvLogFormat           = "PACKADMIN_LOG_FORMAT"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with PACKADMIN_* environment variables.
//
// The dotenv file named by -e/-env-file is loaded first; without the flag
// ./.env is used when present. Variables already set in the process
// environment are never overridden by the file.
//
// Panics on an unreadable explicit env file or on malformed numbers and
// durations, like the other loaders.
func parseEnv(cfg *Config) {
	if file := flagx.EnvFileFlag(); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(EnvServerURL); ok {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.PageSize = n
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		cfg.RequestTimeout = mustDuration(v)
	}
	if v, ok := os.LookupEnv(EnvOnlineCheckInterval); ok {
		cfg.OnlineCheckInterval = mustDuration(v)
	}
	if v, ok := os.LookupEnv(EnvJournalDSN); ok {
		cfg.JournalDSN = v
	}
	if v, ok := os.LookupEnv(EnvSessionToken); ok {
		cfg.SessionToken = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
