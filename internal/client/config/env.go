package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TASKDESK"

// parseEnv overlays cfg with TASKDESK_* environment variables.
// Durations accept Go duration strings ("90s") only.
func parseEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	texts := map[string]*string{
		"base_url":       &cfg.BaseURL,
		"storage_driver": &cfg.StorageDriver,
		"storage_path":   &cfg.StoragePath,
		"log_level":      &cfg.LogLevel,
		"token_key":      &cfg.TokenKey,
		"user_key":       &cfg.UserKey,
		"activity_key":   &cfg.ActivityKey,
	}
	durations := map[string]*time.Duration{
		"inactivity_timeout":    &cfg.InactivityTimeout,
		"request_timeout":       &cfg.RequestTimeout,
		"online_check_interval": &cfg.OnlineCheckInterval,
	}

	for key, dst := range texts {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	for key, dst := range durations {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
		if !v.IsSet(key) {
			continue
		}
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return fmt.Errorf("env %s_%s: %w", envPrefix, key, err)
		}
		*dst = d
	}
	return nil
}
