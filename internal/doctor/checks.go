package doctor

import (
	"fmt"
	"os"

	"github.com/sublipack/sublipack/internal/archiver"
	"github.com/sublipack/sublipack/internal/exclude"
	"github.com/sublipack/sublipack/internal/paths"
	"github.com/sublipack/sublipack/pkg/fileutil"
)

// ArchiverCheck verifies that a 7-Zip-compatible binary can be located.
type ArchiverCheck struct {
	// Override is the configured binary, empty for PATH probing.
	Override string
}

var _ Check = (*ArchiverCheck)(nil)

func (c *ArchiverCheck) Name() string     { return "archiver-binary" }
func (c *ArchiverCheck) Category() string { return "archiver" }

func (c *ArchiverCheck) Run() *CheckResult {
	bin, err := archiver.Locate(c.Override)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  err.Error(),
			FixHint:  "Install p7zip (7za) or set 'binary' in the config file",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("archiver found at %s", bin),
		Details:  map[string]any{"binary": bin},
	}
}

// DataDirCheck verifies that the Sublime Text data directory and its
// packing roots exist.
type DataDirCheck struct {
	// Override is the configured data directory, empty for auto-detection.
	Override string
}

var _ Check = (*DataDirCheck)(nil)

func (c *DataDirCheck) Name() string     { return "data-directory" }
func (c *DataDirCheck) Category() string { return "sublime" }

func (c *DataDirCheck) Run() *CheckResult {
	dataDir := c.Override
	if dataDir == "" {
		var err error
		dataDir, err = paths.DataDir()
		if err != nil {
			return &CheckResult{
				Name:     c.Name(),
				Category: c.Category(),
				Status:   SeverityError,
				Message:  "no Sublime Text data directory found",
				Details:  map[string]any{"candidates": paths.DataDirCandidates()},
				FixHint:  "Set 'data_dir' in the config file if Sublime Text uses a custom location",
			}
		}
	} else if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("configured data_dir %s is not a directory", dataDir),
		}
	}

	var missing []string
	for _, root := range paths.Roots(dataDir) {
		if !fileutil.Exists(root.Path) {
			missing = append(missing, root.Base())
		}
	}
	if len(missing) > 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("data directory %s is missing %v", dataDir, missing),
			Details:  map[string]any{"data_dir": dataDir, "missing": missing},
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("data directory %s with both packing roots", dataDir),
		Details:  map[string]any{"data_dir": dataDir},
	}
}

// SettingsCheck verifies that the Package Control settings file, when
// present, can be parsed.
type SettingsCheck struct {
	// DataDir is the resolved Sublime data directory.
	DataDir string
}

var _ Check = (*SettingsCheck)(nil)

func (c *SettingsCheck) Name() string     { return "package-control-settings" }
func (c *SettingsCheck) Category() string { return "sublime" }

func (c *SettingsCheck) Run() *CheckResult {
	path := paths.PackageControlSettingsPath(c.DataDir)

	installed, err := exclude.LoadInstalledPackages(path)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot parse %s: %v", path, err),
			FixHint:  "Fix or remove the settings file; pack --no-package-control skips it",
		}
	}

	if len(installed) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "Package Control not installed or no managed packages",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d packages managed by Package Control", len(installed)),
		Details:  map[string]any{"installed_packages": len(installed)},
	}
}

// MirrorCheck reports stale backup mirrors left on disk.
type MirrorCheck struct {
	// DataDir is the resolved Sublime data directory.
	DataDir string
}

var _ Check = (*MirrorCheck)(nil)

func (c *MirrorCheck) Name() string     { return "backup-mirrors" }
func (c *MirrorCheck) Category() string { return "backup" }

func (c *MirrorCheck) Run() *CheckResult {
	var present []string
	for _, root := range paths.Roots(c.DataDir) {
		if fileutil.Exists(root.BackupPath()) {
			present = append(present, root.BackupPath())
		}
	}

	if len(present) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "no backup mirrors on disk",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
		Message:  fmt.Sprintf("%d backup mirror(s) present", len(present)),
		Details:  map[string]any{"mirrors": present},
		FixHint:  "Run 'sublipack backup remove' once you no longer need them",
	}
}
