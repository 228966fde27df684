package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/paths"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// passwordEnvVar supplies the archive password when no flag is given.
const passwordEnvVar = "SUBLIPACK_PASSWORD"

// resolveDataDir returns the Sublime Text data directory, preferring the
// --data-dir flag, then the config file, then auto-detection.
func resolveDataDir() (string, error) {
	for _, dir := range []string{dataDirFlag, cfg.DataDir} {
		if dir == "" {
			continue
		}
		dir = expandHome(dir)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return "", errors.NewUserError(
				errors.Newf("data directory %s does not exist", dir),
				"Check the --data-dir flag and the data_dir config value")
		}
		return dir, nil
	}

	dir, err := paths.DataDir()
	if err != nil {
		return "", errors.NewUserError(err,
			"Set data_dir in the config file if Sublime Text uses a custom location")
	}
	return dir, nil
}

// resolveRoots returns the packing roots for the resolved data directory.
func resolveRoots() ([]paths.Root, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	return paths.Roots(dataDir), nil
}

// resolvePassword returns the archive password: the flag value when set,
// otherwise the SUBLIPACK_PASSWORD environment variable.
func resolvePassword(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(passwordEnvVar)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" {
		return paths.Home()
	}
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(paths.Home(), path[2:])
	}
	return path
}

// humanSize formats a byte count for display.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
