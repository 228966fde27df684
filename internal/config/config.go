// Package config provides configuration management for sublipack using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/sublipack/sublipack/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// Config represents the top-level configuration structure.
type Config struct {
	// Version is the config format version.
	Version int `mapstructure:"version" yaml:"version"`

	// DataDir overrides Sublime Text data directory detection when set.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// Binary overrides archiver binary lookup when set (absolute path or
	// a name resolved via PATH).
	Binary string `mapstructure:"binary" yaml:"binary"`

	// OutputDir is where pack writes archives when no output file is given.
	// Empty means the system temp directory.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Exclude lists extra exclusion entries appended to every pack,
	// relative to the data directory (e.g. "Packages/Zukan Icon Theme").
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.AppConfigDir())

	// Environment variable support
	viper.SetEnvPrefix("SUBLIPACK")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("data_dir", "")
	viper.SetDefault("binary", "")
	viper.SetDefault("output_dir", "")
	viper.SetDefault("exclude", []string{})
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// DefaultPath returns the path the init command writes the config file to.
// Returns: <ConfigHome>/sublipack/config.yaml
func DefaultPath() string {
	return filepath.Join(paths.AppConfigDir(), "config.yaml")
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Version: 1,
		Exclude: []string{},
	}
}
