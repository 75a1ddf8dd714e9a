package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/philipp01105/envlog/core"
	"github.com/philipp01105/envlog/env"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	keyLogLevel          = "log_level"
	keyWebhookURL        = "slack_webhook_url"
	keyLogFile           = "log_file"
	keyLogFileMaxSize    = "log_file_max_size"
	keyLogFileMaxBackups = "log_file_max_backups"
	keyLogColor          = "log_color"
	keyAlertTimeout      = "alert_timeout"
	keyAlertRateLimit    = "alert_rate_limit"
)

const (
	DefaultFileMaxSize    = 100 << 20
	DefaultFileMaxBackups = 5
	DefaultAlertTimeout   = 5 * time.Second
)

// FileConfig describes the optional file destination.
type FileConfig struct {
	Path       string
	MaxSize    int64
	MaxBackups int
}

// Config is the resolved logging configuration. It is computed once per
// process and treated as read-only afterwards.
type Config struct {
	// Level is the LOG_LEVEL override; zero when unset or unrecognised.
	Level           core.Level
	AlertWebhookURL string
	AlertTimeout    time.Duration
	// AlertRateLimit is the maximum number of alerts per minute; zero
	// disables limiting.
	AlertRateLimit int
	Color          string
	File           FileConfig
	// Warnings lists settings that were rejected and replaced by defaults.
	Warnings []string
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		AlertTimeout: DefaultAlertTimeout,
		Color:        ColorAuto,
		File: FileConfig{
			MaxSize:    DefaultFileMaxSize,
			MaxBackups: DefaultFileMaxBackups,
		},
	}
}

// Threshold returns the minimum level for a profile: the LOG_LEVEL
// override when present, otherwise details in development and info in
// production and the browser.
func (c Config) Threshold(p env.Profile) core.Level {
	if c.Level.Known() {
		return c.Level
	}
	if p == env.ProfileDevelopment {
		return core.DetailsLevel
	}
	return core.InfoLevel
}

// AlertsEnabled reports whether critical records are escalated.
func (c Config) AlertsEnabled() bool {
	return c.AlertWebhookURL != ""
}

// settings mirrors the raw variables. Everything is a string so that a
// malformed number only invalidates its own key.
type settings struct {
	LogLevel          string `mapstructure:"log_level" json:"LOG_LEVEL"`
	WebhookURL        string `mapstructure:"slack_webhook_url" json:"SLACK_WEBHOOK_URL"`
	LogFile           string `mapstructure:"log_file" json:"LOG_FILE"`
	LogFileMaxSize    string `mapstructure:"log_file_max_size" json:"LOG_FILE_MAX_SIZE"`
	LogFileMaxBackups string `mapstructure:"log_file_max_backups" json:"LOG_FILE_MAX_BACKUPS"`
	LogColor          string `mapstructure:"log_color" json:"LOG_COLOR"`
	AlertTimeout      string `mapstructure:"alert_timeout" json:"ALERT_TIMEOUT"`
	AlertRateLimit    string `mapstructure:"alert_rate_limit" json:"ALERT_RATE_LIMIT"`
}

// Load reads the configuration from the process environment.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	return LoadFrom(v)
}

// LoadFrom reads the configuration from v. Keys are the lower-case
// variable names; unset keys take their defaults.
func LoadFrom(v *viper.Viper) Config {
	v.SetDefault(keyLogColor, ColorAuto)
	v.SetDefault(keyAlertTimeout, DefaultAlertTimeout.String())
	v.SetDefault(keyLogFileMaxSize, strconv.Itoa(DefaultFileMaxSize))
	v.SetDefault(keyLogFileMaxBackups, strconv.Itoa(DefaultFileMaxBackups))
	v.SetDefault(keyAlertRateLimit, "0")
	for _, key := range []string{keyLogLevel, keyWebhookURL, keyLogFile} {
		// BindEnv only fails without a key
		_ = v.BindEnv(key)
	}

	cfg := Default()

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unreadable logging configuration: %v", err))
		return cfg
	}

	rejected := map[string]bool{}
	if err := s.Validate(); err != nil {
		var errs validation.Errors
		if !errors.As(err, &errs) {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid logging configuration: %v", err))
			return cfg
		}
		keys := make([]string, 0, len(errs))
		for key := range errs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			rejected[key] = true
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: %v; using default", key, errs[key]))
		}
	}

	if !rejected["LOG_LEVEL"] {
		cfg.Level, _ = core.ParseLevel(s.LogLevel)
	}
	if !rejected["SLACK_WEBHOOK_URL"] {
		cfg.AlertWebhookURL = s.WebhookURL
	}
	cfg.File.Path = s.LogFile
	if !rejected["LOG_FILE_MAX_SIZE"] {
		cfg.File.MaxSize, _ = strconv.ParseInt(s.LogFileMaxSize, 10, 64)
	}
	if !rejected["LOG_FILE_MAX_BACKUPS"] {
		cfg.File.MaxBackups, _ = strconv.Atoi(s.LogFileMaxBackups)
	}
	if !rejected["LOG_COLOR"] {
		cfg.Color = s.LogColor
	}
	if !rejected["ALERT_TIMEOUT"] {
		cfg.AlertTimeout, _ = time.ParseDuration(s.AlertTimeout)
	}
	if !rejected["ALERT_RATE_LIMIT"] {
		cfg.AlertRateLimit, _ = strconv.Atoi(s.AlertRateLimit)
	}

	return cfg
}

// Validate checks every setting independently.
func (s settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.LogLevel, validation.By(validateLevelName)),
		validation.Field(&s.WebhookURL, validation.By(validateWebhookURL)),
		validation.Field(&s.LogFileMaxSize, validation.Required, is.Int, validation.By(validateNonNegative)),
		validation.Field(&s.LogFileMaxBackups, validation.Required, is.Int, validation.By(validateNonNegative)),
		validation.Field(&s.LogColor, validation.Required, validation.In(ColorAuto, ColorAlways, ColorNever)),
		validation.Field(&s.AlertTimeout, validation.Required, validation.By(validateDuration)),
		validation.Field(&s.AlertRateLimit, validation.Required, is.Int, validation.By(validateNonNegative)),
	)
}

func validateLevelName(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if name == "" {
		return nil
	}
	if _, ok := core.ParseLevel(name); !ok {
		return validation.NewError("validation_unknown_level", "must be a known severity name")
	}
	return nil
}

func validateWebhookURL(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if raw == "" {
		return nil
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}
	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}
	return nil
}

func validateDuration(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 500ms)")
	}
	if d <= 0 {
		return validation.NewError("validation_invalid_duration", "must be positive")
	}
	return nil
}

func validateNonNegative(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// reported by is.Int
		return nil
	}
	if n < 0 {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}
