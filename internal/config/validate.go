package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidExclude indicates an exclusion entry is malformed.
	ErrInvalidExclude = errors.New("invalid exclude entry")
)

// PathError reports a problem with a path-valued config field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"data_dir", cfg.DataDir},
		{"output_dir", cfg.OutputDir},
	} {
		if field.value == "" {
			continue
		}
		if err := validatePath(field.value); err != nil {
			errs = append(errs, &PathError{Field: field.name, Path: field.value, Err: err})
		}
	}

	for _, entry := range cfg.Exclude {
		if err := validateExclude(entry); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// validatePath rejects paths with embedded NUL bytes or traversal sequences.
func validatePath(path string) error {
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "~") {
		return ErrInvalidPath
	}
	return nil
}

// validateExclude rejects empty or absolute exclusion entries; entries are
// relative to the data directory.
func validateExclude(entry string) error {
	if strings.TrimSpace(entry) == "" {
		return ErrInvalidExclude
	}
	if filepath.IsAbs(entry) {
		return &PathError{Field: "exclude", Path: entry, Err: ErrInvalidExclude}
	}
	return nil
}
