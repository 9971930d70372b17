package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/handiism/tcg-portfolio/internal/http"
	"github.com/handiism/tcg-portfolio/internal/pokemontcg"
)

// EnvPrefix is prepended to every environment override, e.g. TCG_DATA_FILE.
const EnvPrefix = "TCG"

// ConfigName is the base name of the config file searched for when no
// explicit path is given.
const ConfigName = "tcg-portfolio"

// Settings holds all configuration options.
type Settings struct {
	// Output files
	DataFile     string `mapstructure:"data_file"`
	ReportFile   string `mapstructure:"report_file"`
	HistoryFile  string `mapstructure:"history_file"`
	ThumbnailDir string `mapstructure:"thumbnail_dir"`

	// Remote API
	APIBaseURL     string        `mapstructure:"api_base_url"`
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Pacing and retries
	PacingInterval      time.Duration `mapstructure:"pacing_interval"`
	MaxAttempts         int           `mapstructure:"max_attempts"`
	BusyBackoffBase     time.Duration `mapstructure:"busy_backoff_base"`
	BusyBackoffStep     time.Duration `mapstructure:"busy_backoff_step"`
	TransportRetryDelay time.Duration `mapstructure:"transport_retry_delay"`

	// Query source; empty means the built-in collection
	QueriesFile string `mapstructure:"queries_file"`

	// Thumbnails
	ThumbnailConcurrency int `mapstructure:"thumbnail_concurrency"`
	ThumbnailMaxSize     int `mapstructure:"thumbnail_max_size"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`  // debug, info, warn, error
	LogFormat string `mapstructure:"log_format"` // pretty, json

	// Value history
	HistoryEnabled bool `mapstructure:"history_enabled"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	policy := pokemontcg.DefaultRetryPolicy()
	return &Settings{
		DataFile:     "portfolio_data.json",
		ReportFile:   "generated_cards.html",
		HistoryFile:  "portfolio_history.db",
		ThumbnailDir: "thumbnails",

		APIBaseURL:     http.DefaultBaseURL,
		UserAgent:      http.DefaultUserAgent,
		RequestTimeout: 30 * time.Second,

		PacingInterval:      1200 * time.Millisecond,
		MaxAttempts:         policy.MaxAttempts,
		BusyBackoffBase:     policy.BusyBase,
		BusyBackoffStep:     policy.BusyStep,
		TransportRetryDelay: policy.TransportDelay,

		ThumbnailConcurrency: 4,
		ThumbnailMaxSize:     245,

		LogLevel:  "warn",
		LogFormat: "pretty",

		HistoryEnabled: true,
	}
}

// Load reads settings from defaults, an optional config file and the
// environment, in increasing order of precedence.
//
// A .env file in the working directory is loaded into the environment
// first. When path is empty, tcg-portfolio.toml is looked up in the working
// directory and then in $XDG_CONFIG_HOME/tcg-portfolio; a missing file is
// not an error. An explicit path that cannot be read is.
func Load(path string) (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a TOML file, creating the directory if needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	for key, value := range s.values() {
		if d, ok := value.(time.Duration); ok {
			value = d.String()
		}
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects settings the tracker cannot run with.
func (s *Settings) Validate() error {
	switch {
	case s.DataFile == "":
		return errors.New("config: data_file must not be empty")
	case s.ReportFile == "":
		return errors.New("config: report_file must not be empty")
	case s.APIBaseURL == "":
		return errors.New("config: api_base_url must not be empty")
	case s.MaxAttempts < 1:
		return fmt.Errorf("config: max_attempts must be at least 1, got %d", s.MaxAttempts)
	case s.PacingInterval < 0 || s.BusyBackoffBase < 0 || s.BusyBackoffStep < 0 || s.TransportRetryDelay < 0:
		return errors.New("config: delays must not be negative")
	case s.ThumbnailConcurrency < 1:
		return fmt.Errorf("config: thumbnail_concurrency must be at least 1, got %d", s.ThumbnailConcurrency)
	}

	switch s.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("config: log_format must be pretty or json, got %q", s.LogFormat)
	}
	return nil
}

// ToRetryPolicy converts settings to the resolver's RetryPolicy.
func (s *Settings) ToRetryPolicy() pokemontcg.RetryPolicy {
	return pokemontcg.RetryPolicy{
		MaxAttempts:    s.MaxAttempts,
		BusyBase:       s.BusyBackoffBase,
		BusyStep:       s.BusyBackoffStep,
		TransportDelay: s.TransportRetryDelay,
	}
}

// ToClientOptions converts settings to HTTP client options.
func (s *Settings) ToClientOptions() http.Options {
	return http.Options{
		BaseURL:   s.APIBaseURL,
		UserAgent: s.UserAgent,
		Timeout:   s.RequestTimeout,
	}
}

func (s *Settings) values() map[string]any {
	return map[string]any{
		"data_file":             s.DataFile,
		"report_file":           s.ReportFile,
		"history_file":          s.HistoryFile,
		"thumbnail_dir":         s.ThumbnailDir,
		"api_base_url":          s.APIBaseURL,
		"user_agent":            s.UserAgent,
		"request_timeout":       s.RequestTimeout,
		"pacing_interval":       s.PacingInterval,
		"max_attempts":          s.MaxAttempts,
		"busy_backoff_base":     s.BusyBackoffBase,
		"busy_backoff_step":     s.BusyBackoffStep,
		"transport_retry_delay": s.TransportRetryDelay,
		"queries_file":          s.QueriesFile,
		"thumbnail_concurrency": s.ThumbnailConcurrency,
		"thumbnail_max_size":    s.ThumbnailMaxSize,
		"log_level":             s.LogLevel,
		"log_format":            s.LogFormat,
		"history_enabled":       s.HistoryEnabled,
	}
}

func setDefaults(v *viper.Viper, s *Settings) {
	for key, value := range s.values() {
		v.SetDefault(key, value)
	}
}
