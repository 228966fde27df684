// Package paths provides cross-platform path resolution for Sublime Text's
// data directory and for sublipack's own config and state files.
//
// # Sublime Text Data Directory
//
// The data directory holds the two directories sublipack packs and restores:
//
//	<data>/Packages/            unpacked packages (no suffix)
//	<data>/Installed Packages/  packed packages (.sublime-package)
//
// Its location varies by operating system and product version:
//
//	| OS      | Current                                        | Legacy (ST3)     |
//	|---------|------------------------------------------------|------------------|
//	| Linux   | ~/.config/sublime-text                         | sublime-text-3   |
//	| macOS   | ~/Library/Application Support/Sublime Text     | Sublime Text 3   |
//	| Windows | %APPDATA%\Sublime Text                         | Sublime Text 3   |
//
// [DataDir] prefers the most recent layout that exists on disk and returns
// [ErrDataDirNotFound] when none does. The location can also be forced via
// configuration, in which case resolution is skipped entirely.
//
// # XDG Base Directory Compliance
//
// sublipack's own files follow the XDG Base Directory Specification via
// github.com/adrg/xdg:
//
//	paths.AppConfigDir() // <ConfigHome>/sublipack/
//	paths.HistoryPath()  // <StateHome>/sublipack/history.toml
package paths
