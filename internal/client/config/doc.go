// Package config loads runtime configuration for the packadmin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables PACKADMIN_*, optionally seeded from a dotenv
//     file chosen with -e or -env-file (./.env by default).
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "page_size": 10,
//	  "request_timeout": "30s",
//	  "online_check_interval": "10s",
//	  "journal_dsn": "packadmin.db",
//	  "log_level": "info",
//	  "log_format": "console"
//	}
package config
