package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API        APIConfig        `mapstructure:"api"`
	User       UserConfig       `mapstructure:"user"`
	Review     ReviewConfig     `mapstructure:"review"`
	Generation GenerationConfig `mapstructure:"generation"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
}

type APIConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"required,url"`
	Token            string `mapstructure:"token"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"gte=1"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts" validate:"lte=10"`
}

// Timeout returns the per request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type UserConfig struct {
	ID string `mapstructure:"id"`
}

type ReviewConfig struct {
	Limit                  int `mapstructure:"limit" validate:"gte=1,lte=500"`
	RetryDelayMilliseconds int `mapstructure:"retry_delay_milliseconds" validate:"gte=0"`
}

// RetryDelay is how long the review engine waits before re-fetching the due cards of a deck
// that came back empty.
func (c ReviewConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMilliseconds) * time.Millisecond
}

type GenerationConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=1"`
}

func (c GenerationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DatabaseConfig configures the optional review journal.
// The journal is disabled while Database is empty.
type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// Enabled reports whether a journal database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Database != ""
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory"`
}

type TemplatesConfig struct {
	DeckTemplate string `mapstructure:"deck_template" validate:"omitempty,file"`
}

// envBindings lists the keys read from environment variables so that config files
// can be shared without credentials.
var envBindings = map[string]string{
	"api.base_url":      "MEMOCARD_API_BASE_URL",
	"api.token":         "MEMOCARD_API_TOKEN",
	"user.id":           "MEMOCARD_USER_ID",
	"database.password": "DB_PASSWORD",
}

type ConfigLoader struct {
	viper     *viper.Viper
	validator *configValidator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, err := newConfigValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/memocard")
	}

	return &ConfigLoader{
		viper:     v,
		validator: validate,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.max_retry_attempts", 2)
	v.SetDefault("review.limit", 20)
	v.SetDefault("review.retry_delay_milliseconds", 2500)
	v.SetDefault("generation.timeout_seconds", 120)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("outputs.export_directory", "outputs")
	v.SetDefault("templates.deck_template", "")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.check(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
