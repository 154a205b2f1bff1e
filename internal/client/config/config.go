package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// Config holds runtime settings for the TaskDesk CLI.
type Config struct {
	BaseURL             string
	InactivityTimeout   time.Duration
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration

	StorageDriver string
	StoragePath   string

	LogLevel string

	TokenKey    string
	UserKey     string
	ActivityKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:4000"
	c.InactivityTimeout = 5 * time.Minute
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.StorageDriver = DriverSQLite
	c.StoragePath = "taskdesk.db"
	c.LogLevel = "info"
	c.TokenKey = "@auth_token"
	c.UserKey = "@user_data"
	c.ActivityKey = "@last_activity_time"
}

var (
	ErrMissingBaseURL = errors.New("base URL is required")
	ErrBadDuration    = errors.New("durations must be positive")
	ErrUnknownDriver  = errors.New("unknown storage driver")
	ErrMissingKey     = errors.New("storage keys must be set")
)

// Validate checks that c can be used to start the client.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.InactivityTimeout <= 0 || c.RequestTimeout <= 0 || c.OnlineCheckInterval <= 0 {
		return ErrBadDuration
	}
	if c.StorageDriver != DriverSQLite && c.StorageDriver != DriverBadger {
		return fmt.Errorf("%w %q", ErrUnknownDriver, c.StorageDriver)
	}
	if c.TokenKey == "" || c.UserKey == "" || c.ActivityKey == "" {
		return ErrMissingKey
	}
	return nil
}

// Load builds a Config from defaults, the config file, the environment and
// args (without the program name), in that order.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load applied to the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
