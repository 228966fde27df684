// Package exclude builds the archive exclusion list for pack operations.
//
// The list combines three sources, in order: caller-supplied extra entries,
// a static blacklist of transient files, and the package names Package
// Control manages (read from its settings file). Entries are paths relative
// to the Sublime Text data directory, e.g. "Packages/Emmet" or
// "Installed Packages/Emmet.sublime-package".
package exclude

import (
	"path"
	"strings"

	"github.com/sublipack/sublipack/internal/paths"
)

// Static blacklist of entries that should never be archived. These are
// regenerated by Sublime Text or Package Control and only bloat archives.
var (
	// packagesBlacklist lists names under Packages/.
	packagesBlacklist = []string{}

	// installedPackagesBlacklist lists file names under Installed Packages/.
	// The loader package is rebuilt by Package Control on startup.
	installedPackagesBlacklist = []string{
		"0_package_control_loader" + paths.InstalledPackageExt,
	}
)

// packageControlName identifies Package Control itself. It is never excluded
// so that a restored configuration can bootstrap the remaining packages.
const packageControlName = "package control"

// Options controls exclusion list construction.
type Options struct {
	// Extra entries are prepended verbatim (relative to the data directory).
	Extra []string

	// InstalledPackages are the package names Package Control manages.
	// Ignored when SkipPackageControl is true.
	InstalledPackages []string

	// SkipPackageControl disables the Package Control derived entries.
	// Set for backup archives, which should capture everything.
	SkipPackageControl bool
}

// Build assembles the exclusion list for the given packing roots.
// Order is deterministic: extra entries, static blacklist, Package Control
// entries in input order.
func Build(roots []paths.Root, opts Options) []string {
	entries := make([]string, 0, len(opts.Extra)+len(opts.InstalledPackages)*len(roots))
	entries = append(entries, opts.Extra...)
	entries = append(entries, blacklist(roots)...)

	if !opts.SkipPackageControl {
		entries = append(entries, forPackageControl(roots, opts.InstalledPackages)...)
	}

	return entries
}

// blacklist returns the static entries for the given roots.
func blacklist(roots []paths.Root) []string {
	var entries []string
	for _, root := range roots {
		for _, name := range blacklistFor(root) {
			entries = append(entries, path.Join(root.Base(), name))
		}
	}
	return entries
}

func blacklistFor(root paths.Root) []string {
	if root.Suffix == paths.InstalledPackageExt {
		return installedPackagesBlacklist
	}
	return packagesBlacklist
}

// forPackageControl expands each managed package name into one entry per
// root, applying the root's suffix. Package Control itself is kept.
func forPackageControl(roots []paths.Root, installed []string) []string {
	var entries []string
	for _, name := range installed {
		if strings.ToLower(name) == packageControlName {
			continue
		}
		for _, root := range roots {
			entries = append(entries, path.Join(root.Base(), name)+root.Suffix)
		}
	}
	return entries
}
