package config

import "time"

// Log formats understood by logging.New.
const (
	LogFormatText    = "text"
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config holds runtime settings for the packadmin console.
//
// Fields:
//   - ServerURL: base URL of the remote data service.
//   - PageSize: rows per page in every list view.
//   - RequestTimeout: upper bound for one remote request.
//   - OnlineCheckInterval: how often the console probes reachability.
//   - JournalDSN: SQLite DSN of the local mutation journal; empty disables it.
//   - SessionToken: optional bearer token sent with every request.
//   - LogLevel, LogFormat: logger settings.
type Config struct {
	ServerURL           string
	PageSize            int
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	JournalDSN          string
	SessionToken        string
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.PageSize = 10
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.JournalDSN = "packadmin.db"
	c.SessionToken = ""
	c.LogLevel = "info"
	c.LogFormat = LogFormatText
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (optionally seeded from a dotenv file), a JSON file
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
