// Package config loads runtime configuration for the TaskDesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. Environment variables prefixed with TASKDESK_, e.g. TASKDESK_BASE_URL.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the TaskDesk API
//	-t int      inactivity timeout (seconds)
//	-r int      per-request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-d string   local storage path
//	-s string   local storage driver: sqlite or badger
//	-l string   log level: debug, info, warn or error
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "5m" or
// integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.com",
//	  "inactivity_timeout": "5m",
//	  "storage": {"driver": "badger", "path": "/var/lib/taskdesk"}
//	}
package config
