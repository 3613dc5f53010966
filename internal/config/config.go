// Package config loads the gtmaudit configuration from
// <root>/.gtmaudit/config.json. A missing file is not an error; defaults
// apply.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the complete gtmaudit configuration.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	// IncludePausedTags controls whether paused tags participate in
	// reference scanning, usage accounting and evaluation impact.
	IncludePausedTags bool `json:"includePausedTags" mapstructure:"includePausedTags"`

	Graph     GraphConfig     `json:"graph" mapstructure:"graph"`
	Storage   StorageConfig   `json:"storage" mapstructure:"storage"`
	TypeNames TypeNamesConfig `json:"typeNames" mapstructure:"typeNames"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// GraphConfig bounds graph dataset exports.
type GraphConfig struct {
	MaxNodes       int `json:"maxNodes" mapstructure:"maxNodes"`
	MinConnections int `json:"minConnections" mapstructure:"minConnections"`
}

// StorageConfig contains run-history storage settings.
type StorageConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// Path overrides the default .gtmaudit/gtmaudit.db location.
	Path string `json:"path" mapstructure:"path"`
}

// TypeNamesConfig points at user-maintained display-name tables.
type TypeNamesConfig struct {
	// OverridesPath names a TOML file extending the type-name tables.
	OverridesPath string `json:"overridesPath" mapstructure:"overridesPath"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:           1,
		IncludePausedTags: true,
		Graph: GraphConfig{
			MaxNodes:       500,
			MinConnections: 0,
		},
		Storage: StorageConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads configuration from <root>/.gtmaudit/config.json, falling back
// to defaults when no file exists.
func Load(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("includePausedTags", true)
	v.SetDefault("graph.maxNodes", 500)
	v.SetDefault("graph.minConnections", 0)
	v.SetDefault("storage.enabled", true)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".gtmaudit"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to <root>/.gtmaudit/config.json.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".gtmaudit")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}
