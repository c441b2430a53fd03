// Package config loads the toolschema command configuration.
//
// Values are resolved with the following precedence (highest first):
//
//  1. Environment variables (URL_KEY_RATES, URL_KEY_RATES_ATTRS,
//     URL_KEY_RATES_NAMES, LOG_LEVEL, APP_NAME, or TOOLSCHEMA_<KEY>)
//  2. The config file passed to Load, if any
//  3. Defaults
//
// A .env file in the working directory is read into the environment first
// when it exists.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the dotenv file read by Load when present.
const DefaultEnvFile = ".env"

// Config is the command configuration.
type Config struct {
	AppName  string        `mapstructure:"app_name" validate:"required"`
	LogLevel string        `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	KeyRates KeyRates      `mapstructure:"key_rates"`
	Limits   Limits        `mapstructure:"limits"`
	Tools    []string      `mapstructure:"tools"`
}

// KeyRates locates the key-rates API.
type KeyRates struct {
	URL      string `mapstructure:"url" validate:"required,url"`
	AttrsURL string `mapstructure:"attrs_url" validate:"required,url"`
	NamesURL string `mapstructure:"names_url" validate:"required,url"`
}

// Limits bound tool invocations.
type Limits struct {
	Rate     int `mapstructure:"rate" validate:"gte=1"`
	Burst    int `mapstructure:"burst" validate:"gte=1"`
	MaxBytes int `mapstructure:"max_bytes" validate:"gte=1"`
}

type envBinding struct {
	key    string
	envVar string
}

var envBindings = []envBinding{
	{key: "app_name", envVar: "APP_NAME"},
	{key: "log_level", envVar: "LOG_LEVEL"},
	{key: "key_rates.url", envVar: "URL_KEY_RATES"},
	{key: "key_rates.attrs_url", envVar: "URL_KEY_RATES_ATTRS"},
	{key: "key_rates.names_url", envVar: "URL_KEY_RATES_NAMES"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "toolschema")
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("key_rates.url", "http://127.0.0.1:23232")
	v.SetDefault("key_rates.attrs_url", "http://127.0.0.1:23232/api/v1/attrs/all")
	v.SetDefault("key_rates.names_url", "http://127.0.0.1:23232/api/v1/docs/known-names")
	v.SetDefault("limits.rate", 10)
	v.SetDefault("limits.burst", 10)
	v.SetDefault("limits.max_bytes", 1<<20)
	v.SetDefault("tools", []string{})
}

// Load reads the configuration. path may be empty.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TOOLSCHEMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, "TOOLSCHEMA_"+strings.ToUpper(strings.ReplaceAll(b.key, ".", "_")), b.envVar); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.envVar, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile reads a dotenv file; its values replace variables already set.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Overload(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.KeyRates.URL = strings.TrimRight(c.KeyRates.URL, "/")
	c.KeyRates.AttrsURL = strings.TrimRight(c.KeyRates.AttrsURL, "/")
	c.KeyRates.NamesURL = strings.TrimRight(c.KeyRates.NamesURL, "/")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}
