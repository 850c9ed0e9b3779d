package config

import (
	"time"

	"github.com/s0up4200/twelvedata/twelvedata"
)

// Config represents the complete configuration structure
type Config struct {
	API         APIConfig        `mapstructure:"api"`
	Throttle    ThrottleConfig   `mapstructure:"throttle"`
	Defaults    DefaultsConfig   `mapstructure:"defaults"`
	Indicators  IndicatorsConfig `mapstructure:"indicators"`
	WebSocket   WebSocketConfig  `mapstructure:"websocket"`
	Logging     LoggingConfig    `mapstructure:"logging"`
	Concurrency int              `mapstructure:"concurrency" validate:"gte=1,lte=64"`
}

// APIConfig holds Twelve Data connection details
type APIConfig struct {
	APIKey    string        `mapstructure:"api_key" validate:"required,ne=your-api-key-here"`
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Source    string        `mapstructure:"source" validate:"required"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ThrottleConfig limits outbound request rate
type ThrottleConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required_if=Enabled true,gte=0"`
	Burst             int     `mapstructure:"burst" validate:"required_if=Enabled true,gte=0"`
}

// DefaultsConfig are the parameters sent with every request
type DefaultsConfig struct {
	OutputSize int    `mapstructure:"outputsize"`
	Timezone   string `mapstructure:"timezone"`
	Order      string `mapstructure:"order"`
	Prepost    bool   `mapstructure:"prepost"`
	DP         int    `mapstructure:"dp"`
}

// IndicatorsConfig holds technical indicator settings. Not used by the
// request layer.
type IndicatorsConfig struct {
	TimePeriod   int    `mapstructure:"time_period" validate:"gte=1"`
	FastPeriod   int    `mapstructure:"fast_period" validate:"gte=1"`
	SlowPeriod   int    `mapstructure:"slow_period" validate:"gte=1,gtfield=FastPeriod"`
	SignalPeriod int    `mapstructure:"signal_period" validate:"gte=1"`
	MAType       string `mapstructure:"ma_type" validate:"oneof=SMA EMA WMA DEMA TEMA TRIMA KAMA MAMA T3MA"`
	SeriesType   string `mapstructure:"series_type" validate:"oneof=open high low close volume"`
}

// WebSocketConfig holds streaming settings. Not used by the request layer.
type WebSocketConfig struct {
	MaxQueueSize      int           `mapstructure:"max_queue_size" validate:"gte=1"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  bool   `mapstructure:"color"`
}

// Library converts the configured defaults for the client.
func (d DefaultsConfig) Library() twelvedata.Defaults {
	return twelvedata.Defaults{
		OutputSize: d.OutputSize,
		Timezone:   d.Timezone,
		Order:      d.Order,
		Prepost:    d.Prepost,
		DP:         d.DP,
	}
}

// ClientOptions translates the configuration into client options.
func (c *Config) ClientOptions() []twelvedata.Option {
	opts := []twelvedata.Option{
		twelvedata.WithBaseURL(c.API.BaseURL),
		twelvedata.WithTimeout(c.API.Timeout),
		twelvedata.WithSource(c.API.Source),
		twelvedata.WithDefaults(c.Defaults.Library()),
	}
	if c.API.UserAgent != "" {
		opts = append(opts, twelvedata.WithUserAgent(c.API.UserAgent))
	}
	if c.Throttle.Enabled {
		opts = append(opts, twelvedata.WithThrottle(c.Throttle.RequestsPerSecond, c.Throttle.Burst))
	}
	return opts
}
