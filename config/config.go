package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/s0up4200/twelvedata/twelvedata"
)

// EnvPrefix prefixes every environment override, e.g. TWELVEDATA_API_BASE_URL.
const EnvPrefix = "TWELVEDATA"

// Load loads the configuration from file and environment. Without an
// explicit path a missing config file is not an error, so the API key can
// come from TWELVEDATA_API_KEY alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.api_key", EnvPrefix+"_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".twelvedata"))
		}
		v.AddConfigPath("/etc/twelvedata/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.api_key", "")
	v.SetDefault("api.base_url", twelvedata.DefaultBaseURL)
	v.SetDefault("api.timeout", twelvedata.DefaultTimeout)
	v.SetDefault("api.source", twelvedata.DefaultSource)
	v.SetDefault("api.user_agent", "")

	v.SetDefault("throttle.enabled", false)
	v.SetDefault("throttle.requests_per_second", 8)
	v.SetDefault("throttle.burst", 1)

	lib := twelvedata.DefaultDefaults()
	v.SetDefault("defaults.outputsize", lib.OutputSize)
	v.SetDefault("defaults.timezone", lib.Timezone)
	v.SetDefault("defaults.order", lib.Order)
	v.SetDefault("defaults.prepost", lib.Prepost)
	v.SetDefault("defaults.dp", lib.DP)

	v.SetDefault("indicators.time_period", 14)
	v.SetDefault("indicators.fast_period", 12)
	v.SetDefault("indicators.slow_period", 26)
	v.SetDefault("indicators.signal_period", 9)
	v.SetDefault("indicators.ma_type", "SMA")
	v.SetDefault("indicators.series_type", "close")

	v.SetDefault("websocket.max_queue_size", 12000)
	v.SetDefault("websocket.heartbeat_interval", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("concurrency", 4)
}

var validate = newValidator()

func newValidator() func(*Config) error {
	vd := validator.New(validator.WithRequiredStructEnabled())
	vd.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return func(cfg *Config) error {
		if err := vd.Struct(cfg); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return errors.New(describe(verrs[0]))
			}
			return err
		}

		if err := cfg.Defaults.Library().Validate(); err != nil {
			return fmt.Errorf("defaults: %w", err)
		}
		return nil
	}
}

// describe renders one validation failure using config file key names.
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", key)
	case "ne":
		return fmt.Sprintf("%s must be set to a valid value", key)
	case "oneof":
		return fmt.Sprintf("invalid %s: %v (must be one of: %s)", key, fe.Value(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", key)
	default:
		return fmt.Sprintf("invalid %s: %v (%s %s)", key, fe.Value(), fe.Tag(), fe.Param())
	}
}
