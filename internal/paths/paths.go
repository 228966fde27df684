package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is used for naming config, state, and cache directories.
const AppName = "sublipack"

// Directory names inside the Sublime Text data directory.
const (
	// PackagesDirName is the directory holding unpacked packages.
	PackagesDirName = "Packages"

	// InstalledPackagesDirName is the directory holding .sublime-package archives.
	InstalledPackagesDirName = "Installed Packages"
)

// InstalledPackageExt is the file extension of packages under Installed Packages.
const InstalledPackageExt = ".sublime-package"

// BackupSuffix is appended to a directory path to form its mirror backup path.
const BackupSuffix = ".bak"

// PackageControlSettingsName is the Package Control settings file name.
const PackageControlSettingsName = "Package Control.sublime-settings"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrDataDirNotFound indicates no Sublime Text data directory exists on this system.
	ErrDataDirNotFound = errors.New("sublime data directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Root is a directory that participates in packing: its path plus the file
// suffix its entries carry inside the archive exclusion list.
type Root struct {
	// Path is the absolute directory path.
	Path string

	// Suffix is appended to package names under this root ("" for Packages,
	// ".sublime-package" for Installed Packages).
	Suffix string
}

// Base returns the base name of the root directory.
func (r Root) Base() string {
	return filepath.Base(r.Path)
}

// BackupPath returns the mirror backup path for the root (<dir>.bak).
func (r Root) BackupPath() string {
	return r.Path + BackupSuffix
}

// Roots returns the two packing roots under a Sublime data directory,
// Packages first. Pack and backup operations preserve this order.
func Roots(dataDir string) []Root {
	return []Root{
		{Path: filepath.Join(dataDir, PackagesDirName), Suffix: ""},
		{Path: filepath.Join(dataDir, InstalledPackagesDirName), Suffix: InstalledPackageExt},
	}
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// StateHome returns the XDG state home directory.
// On Linux: ~/.local/state
func StateHome() string {
	return xdg.StateHome
}

// CacheHome returns the XDG cache home directory.
func CacheHome() string {
	return xdg.CacheHome
}

// AppConfigDir returns the sublipack configuration directory.
// Returns: <ConfigHome>/sublipack/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// HistoryPath returns the archive history state file.
// Returns: <StateHome>/sublipack/history.toml
func HistoryPath() string {
	return filepath.Join(StateHome(), AppName, "history.toml")
}

// DataDirCandidates returns the Sublime Text data directory locations for the
// current operating system, most recent product version first.
func DataDirCandidates() []string {
	return dataDirCandidates(runtime.GOOS, Home())
}

// dataDirCandidates is the testable core of DataDirCandidates.
func dataDirCandidates(goos, home string) []string {
	if home == "" {
		return nil
	}
	switch goos {
	case "darwin":
		appSupport := filepath.Join(home, "Library", "Application Support")
		return []string{
			filepath.Join(appSupport, "Sublime Text"),
			filepath.Join(appSupport, "Sublime Text 3"),
		}
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return []string{
			filepath.Join(appData, "Sublime Text"),
			filepath.Join(appData, "Sublime Text 3"),
		}
	default:
		return []string{
			filepath.Join(home, ".config", "sublime-text"),
			filepath.Join(home, ".config", "sublime-text-3"),
		}
	}
}

// DataDir returns the Sublime Text data directory, preferring the most recent
// product layout that exists on disk.
// Returns ErrDataDirNotFound if no candidate directory exists.
func DataDir() (string, error) {
	candidates := DataDirCandidates()
	for _, dir := range candidates {
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", errors.Wrapf(ErrDataDirNotFound, "checked %d locations", len(candidates))
}

// PackagesDir returns the Packages directory under dataDir.
func PackagesDir(dataDir string) string {
	return filepath.Join(dataDir, PackagesDirName)
}

// InstalledPackagesDir returns the Installed Packages directory under dataDir.
func InstalledPackagesDir(dataDir string) string {
	return filepath.Join(dataDir, InstalledPackagesDirName)
}

// PackageControlSettingsPath returns the Package Control settings file.
// Returns: <dataDir>/Packages/User/Package Control.sublime-settings
func PackageControlSettingsPath(dataDir string) string {
	return filepath.Join(PackagesDir(dataDir), "User", PackageControlSettingsName)
}
