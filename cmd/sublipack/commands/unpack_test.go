package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/history"
)

// setupUnpackLastTest points the archive history at a temp state dir and
// enables the --last flag, restoring everything afterwards.
func setupUnpackLastTest(t *testing.T) {
	t.Helper()

	origLast := unpackLast
	t.Cleanup(func() { unpackLast = origLast })
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	unpackLast = true
}

func TestResolveInputArchive_Last(t *testing.T) {
	setupUnpackLastTest(t)

	dir := t.TempDir()
	var newest string
	for _, name := range []string{"older.zip", "newer.zip"} {
		archive := filepath.Join(dir, name)
		if err := os.WriteFile(archive, []byte("zip"), 0644); err != nil {
			t.Fatal(err)
		}
		entry, err := history.NewEntry(archive, 0, false)
		if err != nil {
			t.Fatalf("NewEntry failed: %v", err)
		}
		if err := history.NewStore("").Record(entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		newest = archive
	}

	got, err := resolveInputArchive(nil)
	if err != nil {
		t.Fatalf("resolveInputArchive failed: %v", err)
	}
	if got != newest {
		t.Errorf("resolveInputArchive() = %q, want newest %q", got, newest)
	}
}

func TestResolveInputArchive_LastWithoutHistory(t *testing.T) {
	setupUnpackLastTest(t)

	_, err := resolveInputArchive(nil)
	if !errors.Is(err, errors.ErrNoHistory) {
		t.Errorf("expected ErrNoHistory, got %v", err)
	}
}

func TestResolveInputArchive_ArgumentWins(t *testing.T) {
	setupUnpackLastTest(t)

	got, err := resolveInputArchive([]string{"/tmp/explicit.zip"})
	if err != nil {
		t.Fatalf("resolveInputArchive failed: %v", err)
	}
	if got != "/tmp/explicit.zip" {
		t.Errorf("resolveInputArchive() = %q, explicit argument should win", got)
	}
}
