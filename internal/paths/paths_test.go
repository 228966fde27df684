package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDataDirCandidates(t *testing.T) {
	home := "/home/alice"

	tests := []struct {
		name  string
		goos  string
		first string
	}{
		{
			name:  "linux prefers current layout",
			goos:  "linux",
			first: "/home/alice/.config/sublime-text",
		},
		{
			name:  "darwin uses application support",
			goos:  "darwin",
			first: "/home/alice/Library/Application Support/Sublime Text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dataDirCandidates(tt.goos, home)
			if len(got) != 2 {
				t.Fatalf("expected 2 candidates, got %d", len(got))
			}
			if got[0] != tt.first {
				t.Errorf("first candidate = %q, want %q", got[0], tt.first)
			}
		})
	}
}

func TestDataDirCandidates_EmptyHome(t *testing.T) {
	if got := dataDirCandidates("linux", ""); got != nil {
		t.Errorf("expected nil candidates without a home dir, got %v", got)
	}
}

func TestRoots(t *testing.T) {
	roots := Roots("/data")

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	packages := roots[0]
	if packages.Path != filepath.Join("/data", "Packages") {
		t.Errorf("packages path = %q", packages.Path)
	}
	if packages.Suffix != "" {
		t.Errorf("packages suffix = %q, want empty", packages.Suffix)
	}
	if packages.Base() != "Packages" {
		t.Errorf("packages base = %q", packages.Base())
	}
	if packages.BackupPath() != filepath.Join("/data", "Packages")+".bak" {
		t.Errorf("packages backup path = %q", packages.BackupPath())
	}

	installed := roots[1]
	if installed.Path != filepath.Join("/data", "Installed Packages") {
		t.Errorf("installed path = %q", installed.Path)
	}
	if installed.Suffix != InstalledPackageExt {
		t.Errorf("installed suffix = %q, want %q", installed.Suffix, InstalledPackageExt)
	}
}

func TestPackageControlSettingsPath(t *testing.T) {
	got := PackageControlSettingsPath("/data")
	want := filepath.Join("/data", "Packages", "User", "Package Control.sublime-settings")
	if got != want {
		t.Errorf("PackageControlSettingsPath() = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}

	// Idempotent on existing directory.
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}
