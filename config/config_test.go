package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			APIKey:  "valid-api-key",
			BaseURL: "https://api.twelvedata.com",
			Timeout: 30 * time.Second,
			Source:  "go",
		},
		Throttle: ThrottleConfig{RequestsPerSecond: 8, Burst: 1},
		Defaults: DefaultsConfig{OutputSize: 30, Timezone: "Exchange", Order: "desc", DP: 5},
		Indicators: IndicatorsConfig{
			TimePeriod:   14,
			FastPeriod:   12,
			SlowPeriod:   26,
			SignalPeriod: 9,
			MAType:       "SMA",
			SeriesType:   "close",
		},
		WebSocket:   WebSocketConfig{MaxQueueSize: 12000, HeartbeatInterval: 10 * time.Second},
		Logging:     LoggingConfig{Level: "info", Format: "console"},
		Concurrency: 4,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
		{
			name:    "missing api key",
			modify:  func(c *Config) { c.API.APIKey = "" },
			wantErr: "api.api_key is required",
		},
		{
			name:    "placeholder api key",
			modify:  func(c *Config) { c.API.APIKey = "your-api-key-here" },
			wantErr: "api.api_key must be set to a valid value",
		},
		{
			name:    "bad base url",
			modify:  func(c *Config) { c.API.BaseURL = "not a url" },
			wantErr: "api.base_url must be a valid URL",
		},
		{
			name:    "invalid logging level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging.level: verbose (must be one of: debug info warn error)",
		},
		{
			name:    "invalid logging format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging.format: xml (must be one of: console json)",
		},
		{
			name: "throttle enabled without rate",
			modify: func(c *Config) {
				c.Throttle.Enabled = true
				c.Throttle.RequestsPerSecond = 0
			},
			wantErr: "throttle.requests_per_second is required",
		},
		{
			name:    "invalid default order",
			modify:  func(c *Config) { c.Defaults.Order = "random" },
			wantErr: "defaults: invalid defaults",
		},
		{
			name:    "slow period below fast period",
			modify:  func(c *Config) { c.Indicators.SlowPeriod = 5 },
			wantErr: "invalid indicators.slow_period",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  api_key: file-key
  timeout: 5s
defaults:
  outputsize: 100
  order: asc
throttle:
  enabled: true
  requests_per_second: 2
  burst: 2
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.API.APIKey)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://api.twelvedata.com", cfg.API.BaseURL)
	assert.Equal(t, 100, cfg.Defaults.OutputSize)
	assert.Equal(t, "asc", cfg.Defaults.Order)
	assert.Equal(t, "Exchange", cfg.Defaults.Timezone)
	assert.Equal(t, 5, cfg.Defaults.DP)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 12000, cfg.WebSocket.MaxQueueSize)
	assert.Equal(t, 10*time.Second, cfg.WebSocket.HeartbeatInterval)
	assert.True(t, cfg.Throttle.Enabled)
	assert.Len(t, cfg.ClientOptions(), 5)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: json\n"), 0o600))

	t.Setenv("TWELVEDATA_API_KEY", "env-key")
	t.Setenv("TWELVEDATA_API_BASE_URL", "https://proxy.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.API.APIKey)
	assert.Equal(t, "https://proxy.example.com", cfg.API.BaseURL)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Len(t, cfg.ClientOptions(), 4)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600))
	t.Setenv("TWELVEDATA_API_KEY", "")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.api_key is required")
}

func TestDefaultsConfig_Library(t *testing.T) {
	d := DefaultsConfig{OutputSize: 50, Timezone: "UTC", Order: "asc", Prepost: true, DP: 2}
	lib := d.Library()

	assert.Equal(t, 50, lib.OutputSize)
	assert.Equal(t, "UTC", lib.Timezone)
	assert.True(t, lib.Prepost)
	assert.Equal(t, 2, lib.DP)
}
