// Package config provides configuration management for sublipack using Viper.
//
// Configuration is read from config.yaml in the current directory or the
// sublipack XDG config directory, with SUBLIPACK_* environment variables
// taking precedence over file values.
//
// Supported keys:
//
//	version:    1
//	data_dir:   override Sublime Text data directory detection
//	binary:     override archiver binary lookup (path or PATH name)
//	output_dir: directory for generated archives (default: system temp)
//	exclude:    extra exclusion entries relative to the data directory
package config
