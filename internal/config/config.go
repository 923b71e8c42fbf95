// Package config loads the startup options for the alquimia server.
//
// Options come from an optional alquimia.yaml (searched in $HOME and the
// working directory) layered under ALQUIMIA_* environment variables. The
// Pinterest block is optional: absent credentials disable the import feature
// rather than failing startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every option read once at startup.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LogLevel  string          `mapstructure:"log_level"`
	Pinterest PinterestConfig `mapstructure:"pinterest"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	EnableCORS   bool          `mapstructure:"enable_cors"`
	Debug        bool          `mapstructure:"debug"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// PinterestConfig holds the optional import-source credentials.
type PinterestConfig struct {
	ClientID        string        `mapstructure:"client_id"`
	ClientSecret    string        `mapstructure:"client_secret"`
	CallbackAddress string        `mapstructure:"callback_address"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether the import feature has the credentials it needs.
func (p PinterestConfig) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != "" && p.CallbackAddress != ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "localhost",
			Port:         8080,
			EnableCORS:   true,
			Debug:        false,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		LogLevel: "info",
		Pinterest: PinterestConfig{
			BaseURL: "https://api.pinterest.com/v5",
			Timeout: 10 * time.Second,
		},
	}
}

// Load reads alquimia.yaml (if present) and ALQUIMIA_* environment variables
// on top of the defaults. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("alquimia")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ALQUIMIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.enable_cors", cfg.Server.EnableCORS)
	v.SetDefault("server.debug", cfg.Server.Debug)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("pinterest.client_id", "")
	v.SetDefault("pinterest.client_secret", "")
	v.SetDefault("pinterest.callback_address", "")
	v.SetDefault("pinterest.base_url", cfg.Pinterest.BaseURL)
	v.SetDefault("pinterest.timeout", cfg.Pinterest.Timeout)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
