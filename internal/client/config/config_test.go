package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:4000", c.BaseURL)
	assert.Equal(t, 5*time.Minute, c.InactivityTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, DriverSQLite, c.StorageDriver)
	assert.Equal(t, "@auth_token", c.TokenKey)
	assert.Equal(t, "@user_data", c.UserKey)
	assert.Equal(t, "@last_activity_time", c.ActivityKey)
	assert.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), *cfg))
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"base_url": "https://api.example.com",
		"inactivity_timeout": "30s",
		"online_check_interval": 10000000000,
		"storage": {"driver": "badger", "path": "/tmp/td"}
	}`)

	cfg, err := Load([]string{"-config", path})
	require.NoError(t, err)

	want := defaults()
	want.BaseURL = "https://api.example.com"
	want.InactivityTimeout = 30 * time.Second
	want.OnlineCheckInterval = 10 * time.Second
	want.StorageDriver = DriverBadger
	want.StoragePath = "/tmp/td"
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
base_url: https://yaml.example.com
request_timeout: 2s
log_level: debug
storage:
  token_key: tok
`)

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)

	want := defaults()
	want.BaseURL = "https://yaml.example.com"
	want.RequestTimeout = 2 * time.Second
	want.LogLevel = "debug"
	want.TokenKey = "tok"
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_BadFile(t *testing.T) {
	_, err := Load([]string{"-c", writeFile(t, "bad.json", `{ nope`)})
	assert.Error(t, err)

	_, err = Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	_, err = Load([]string{"-c", writeFile(t, "bad.yml", "inactivity_timeout: soon\n")})
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"base_url": "http://file", "inactivity_timeout": "1m", "log_level": "warn"}`)
	t.Setenv("TASKDESK_BASE_URL", "http://env")
	t.Setenv("TASKDESK_INACTIVITY_TIMEOUT", "2m")
	t.Setenv("TASKDESK_STORAGE_DRIVER", "badger")

	cfg, err := Load([]string{"-c", path, "-a", "http://flag", "-unknown", "x"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag", cfg.BaseURL, "flags beat env")
	assert.Equal(t, 2*time.Minute, cfg.InactivityTimeout, "env beats file")
	assert.Equal(t, "warn", cfg.LogLevel, "file beats defaults")
	assert.Equal(t, DriverBadger, cfg.StorageDriver)
}

func TestLoad_BadEnvDuration(t *testing.T) {
	t.Setenv("TASKDESK_REQUEST_TIMEOUT", "later")
	_, err := Load(nil)
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func(*Config)
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://127.0.0.1:9090", "-t", "45", "-r", "7", "-i", "10", "-d", "/data", "-s", "badger", "-l", "debug"},
			expected: func(c *Config) {
				c.BaseURL = "http://127.0.0.1:9090"
				c.InactivityTimeout = 45 * time.Second
				c.RequestTimeout = 7 * time.Second
				c.OnlineCheckInterval = 10 * time.Second
				c.StoragePath = "/data"
				c.StorageDriver = DriverBadger
				c.LogLevel = "debug"
			},
		},
		{
			name:     "equals form",
			args:     []string{"-t=90"},
			expected: func(c *Config) { c.InactivityTimeout = 90 * time.Second },
		},
		{name: "bad interval", args: []string{"-i", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(&cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.expected(&want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseFlags_KeepsSubSecondValues(t *testing.T) {
	cfg := defaults()
	cfg.InactivityTimeout = 1500 * time.Millisecond

	require.NoError(t, parseFlags(&cfg, []string{"-a", "http://x"}))
	assert.Equal(t, 1500*time.Millisecond, cfg.InactivityTimeout)
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.StorageDriver = "bolt"
	assert.ErrorIs(t, c.Validate(), ErrUnknownDriver)

	c = defaults()
	c.InactivityTimeout = 0
	assert.ErrorIs(t, c.Validate(), ErrBadDuration)

	c = defaults()
	c.BaseURL = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingBaseURL)

	c = defaults()
	c.ActivityKey = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingKey)
}
