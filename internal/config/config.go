// Package config loads application configuration from an optional YAML
// file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration. Every field has a working
// default; the config file is optional.
type Config struct {
	DBPath      string `mapstructure:"db_path"`      // SQLite database file
	LogPath     string `mapstructure:"log_path"`     // log file (the TUI owns stdout)
	DefaultDeck string `mapstructure:"default_deck"` // deck preselected on the home screen
	Debug       bool   `mapstructure:"debug"`        // verbose logging
}

// Load reads configuration from $XDG_CONFIG_HOME/retain/config.yaml (or
// ~/.config/retain/config.yaml) and RETAIN_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetDefault("db_path", "")
	v.SetDefault("log_path", "")
	v.SetDefault("default_deck", "")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("RETAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db_path", "RETAIN_DB")
	_ = v.BindEnv("log_path", "RETAIN_LOG")
	_ = v.BindEnv("default_deck", "RETAIN_DECK")
	_ = v.BindEnv("debug", "RETAIN_DEBUG")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "retain"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "retain"), nil
}
