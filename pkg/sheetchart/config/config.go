// Package config loads sheetchart settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SHEETCHART_PORT.
const EnvPrefix = "SHEETCHART"

// Config holds runtime settings.
type Config struct {
	Width     int    `mapstructure:"width" yaml:"width"`
	Height    int    `mapstructure:"height" yaml:"height"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	Port      uint   `mapstructure:"port" yaml:"port"`
	Debug     bool   `mapstructure:"debug" yaml:"debug"`
	LogFile   string `mapstructure:"log_file" yaml:"log_file"`
	Sheet     string `mapstructure:"sheet" yaml:"sheet"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Width:     960,
		Height:    480,
		OutputDir: ".",
		Port:      8080,
	}
}

// Load reads settings into a Config. path names a config file; when empty,
// .sheetchart/config.yaml is used if it exists.
func Load(v *viper.Viper, path string) (*Config, error) {
	def := Default()
	v.SetDefault("width", def.Width)
	v.SetDefault("height", def.Height)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("port", def.Port)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("sheet", def.Sheet)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
		}
	} else {
		v.AddConfigPath(".sheetchart")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", cfg.Width, cfg.Height)
	}
	return &cfg, nil
}
