// Package config provides configuration management for the backtesting engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"hermes-trader/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Bot   BotConfig     `mapstructure:"bot"`
	Store StoreConfig   `mapstructure:"store"`
	Log   LogFileConfig `mapstructure:"log"`
}

// BotConfig describes one trading bot. It is read once at driver
// construction and never mutated afterwards.
type BotConfig struct {
	Name           string  `mapstructure:"name"`
	RiskTier       string  `mapstructure:"risk_tier"`
	InitialCapital float64 `mapstructure:"initial_capital"`
	UsePivot       bool    `mapstructure:"use_pivot"`
	UseMomentum    bool    `mapstructure:"use_momentum"`
	UseScreener    bool    `mapstructure:"use_screener"`
	UseIndexEvent  bool    `mapstructure:"use_index_event"`
}

// StoreConfig holds data store configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogFileConfig holds logging configuration as read from the config file.
type LogFileConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
	Path    string `mapstructure:"path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/hermes-trader"
	}
	return filepath.Join(home, ".config", "hermes-trader")
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Bot: BotConfig{
			Name:           "hermes",
			RiskTier:       "MEDIUM",
			InitialCapital: 1000,
			UsePivot:       true,
			UseMomentum:    true,
			UseScreener:    true,
			UseIndexEvent:  true,
		},
		Store: StoreConfig{
			Path: filepath.Join(DefaultConfigDir(), "hermes.db"),
		},
		Log: LogFileConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
// A missing config file is not an error: defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	def := Default()
	v.SetDefault("bot.name", def.Bot.Name)
	v.SetDefault("bot.risk_tier", def.Bot.RiskTier)
	v.SetDefault("bot.initial_capital", def.Bot.InitialCapital)
	v.SetDefault("bot.use_pivot", def.Bot.UsePivot)
	v.SetDefault("bot.use_momentum", def.Bot.UseMomentum)
	v.SetDefault("bot.use_screener", def.Bot.UseScreener)
	v.SetDefault("bot.use_index_event", def.Bot.UseIndexEvent)
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.console", def.Log.Console)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.path", def.Log.Path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HERMES_RISK_TIER"); v != "" {
		cfg.Bot.RiskTier = v
	}
	if v := os.Getenv("HERMES_INITIAL_CAPITAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Bot.InitialCapital = f
		}
	}
	if v := os.Getenv("HERMES_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("HERMES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate validates the configuration.
// An unknown risk tier is not rejected here: the risk package resolves
// it to MEDIUM by design.
func (c *Config) Validate() error {
	if c.Bot.InitialCapital <= 0 {
		return fmt.Errorf("bot.initial_capital must be positive, got %v", c.Bot.InitialCapital)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	return nil
}

// LogConfig converts the file-level log settings into the logging package form.
func (c *Config) LogConfig() logging.LogConfig {
	lc := logging.DefaultLogConfig()
	lc.Level = c.Log.Level
	lc.Console = c.Log.Console
	lc.File = c.Log.File
	if c.Log.Path != "" {
		lc.FilePath = c.Log.Path
	}
	return lc
}
