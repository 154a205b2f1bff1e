package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/taskdesk/internal/flagx"
	"github.com/dmitrijs2005/taskdesk/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Absent fields leave the current value.
type fileConfig struct {
	BaseURL             string         `json:"base_url" yaml:"base_url"`
	InactivityTimeout   timex.Duration `json:"inactivity_timeout" yaml:"inactivity_timeout"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`

	Storage struct {
		Driver      string `json:"driver" yaml:"driver"`
		Path        string `json:"path" yaml:"path"`
		TokenKey    string `json:"token_key" yaml:"token_key"`
		UserKey     string `json:"user_key" yaml:"user_key"`
		ActivityKey string `json:"activity_key" yaml:"activity_key"`
	} `json:"storage" yaml:"storage"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.StorageDriver, fc.Storage.Driver)
	setString(&cfg.StoragePath, fc.Storage.Path)
	setString(&cfg.TokenKey, fc.Storage.TokenKey)
	setString(&cfg.UserKey, fc.Storage.UserKey)
	setString(&cfg.ActivityKey, fc.Storage.ActivityKey)

	if fc.InactivityTimeout.Duration != 0 {
		cfg.InactivityTimeout = fc.InactivityTimeout.Duration
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
