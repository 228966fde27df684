package commands

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	// Save/Restore original state
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelInfo},
		{"verbose (1)", 1, slog.LevelDebug},
		{"debug (2)", 2, slog.LevelDebug - 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(context.Background(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if logger.Enabled(context.Background(), tt.wantLevel-1) {
				t.Errorf("expected level %v to be disabled", tt.wantLevel-1)
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"SUBLIPACK_DEBUG=1", "1", slog.LevelDebug},
		{"SUBLIPACK_DEBUG=true", "true", slog.LevelDebug},
		{"SUBLIPACK_DEBUG=2", "2", slog.LevelDebug - 4},
		{"SUBLIPACK_DEBUG=0", "0", slog.LevelInfo},
		{"SUBLIPACK_DEBUG=unknown", "foo", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("SUBLIPACK_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			if !slog.Default().Enabled(context.Background(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
		})
	}
}

func TestSetupLogging_QuietAndVerboseConflict(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity = 1
	quiet = true

	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected an error combining --quiet and --verbose")
	}
}

func TestSetupLogging_QuietLevel(t *testing.T) {
	origQuiet := quiet
	defer func() { quiet = origQuiet }()

	quiet = true
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected warnings to be suppressed in quiet mode")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected errors to remain enabled in quiet mode")
	}
}
