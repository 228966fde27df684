package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sublipack/sublipack/internal/errors"
	"github.com/sublipack/sublipack/internal/logging"
	"github.com/sublipack/sublipack/internal/paths"
	"github.com/sublipack/sublipack/pkg/fileutil"
)

// newTestData lays out a data directory with both roots populated.
func newTestData(t *testing.T) (string, []paths.Root) {
	t.Helper()
	dataDir := t.TempDir()
	roots := paths.Roots(dataDir)

	for _, root := range roots {
		if err := os.MkdirAll(root.Path, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(root.Path, "marker"), []byte(root.Base()), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dataDir, roots
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

func TestCreate(t *testing.T) {
	_, roots := newTestData(t)
	m := NewManager(roots)

	if err := m.Create(testCtx(t)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, root := range roots {
		marker := filepath.Join(root.BackupPath(), "marker")
		got, err := os.ReadFile(marker)
		if err != nil {
			t.Fatalf("mirror missing for %s: %v", root.Base(), err)
		}
		if string(got) != root.Base() {
			t.Errorf("mirror content = %q, want %q", got, root.Base())
		}
	}
}

func TestCreate_ReplacesStaleMirror(t *testing.T) {
	_, roots := newTestData(t)
	m := NewManager(roots)

	// Pre-existing stale mirror with different content
	stale := roots[0].BackupPath()
	if err := os.MkdirAll(stale, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stale, "stale"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.Create(testCtx(t)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if fileutil.Exists(filepath.Join(stale, "stale")) {
		t.Error("stale mirror content should have been removed")
	}
	if !fileutil.Exists(filepath.Join(stale, "marker")) {
		t.Error("fresh mirror content missing")
	}
}

func TestCreate_SkipsMissingRoot(t *testing.T) {
	dataDir := t.TempDir()
	roots := paths.Roots(dataDir)

	// Only the Packages root exists
	if err := os.MkdirAll(roots[0].Path, 0755); err != nil {
		t.Fatal(err)
	}

	m := NewManager(roots)
	if err := m.Create(testCtx(t)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !fileutil.Exists(roots[0].BackupPath()) {
		t.Error("existing root should be mirrored")
	}
	if fileutil.Exists(roots[1].BackupPath()) {
		t.Error("missing root should not produce a mirror")
	}
}

func TestRemove(t *testing.T) {
	_, roots := newTestData(t)
	m := NewManager(roots)

	if err := m.Create(testCtx(t)); err != nil {
		t.Fatal(err)
	}
	if err := m.Remove(testCtx(t)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	for _, root := range roots {
		if fileutil.Exists(root.BackupPath()) {
			t.Errorf("mirror %s should be gone", root.BackupPath())
		}
	}

	// Removing again is a no-op
	if err := m.Remove(testCtx(t)); err != nil {
		t.Errorf("Remove() on absent mirrors error = %v", err)
	}
}

func TestRestore_RefusesLiveDir(t *testing.T) {
	_, roots := newTestData(t)
	m := NewManager(roots)

	if err := m.Create(testCtx(t)); err != nil {
		t.Fatal(err)
	}

	err := m.Restore(testCtx(t), false)
	if !errors.Is(err, ErrLiveDirExists) {
		t.Fatalf("expected ErrLiveDirExists, got %v", err)
	}

	// Mirror must be untouched after the refusal
	if !fileutil.Exists(roots[0].BackupPath()) {
		t.Error("mirror should survive a refused restore")
	}
}

func TestRestore_Force(t *testing.T) {
	_, roots := newTestData(t)
	m := NewManager(roots)

	if err := m.Create(testCtx(t)); err != nil {
		t.Fatal(err)
	}

	// Mutate the live dirs so we can tell restore happened
	for _, root := range roots {
		if err := os.WriteFile(filepath.Join(root.Path, "mutated"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := m.Restore(testCtx(t), true); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	for _, root := range roots {
		if fileutil.Exists(filepath.Join(root.Path, "mutated")) {
			t.Error("live directory should have been replaced by the mirror")
		}
		if !fileutil.Exists(filepath.Join(root.Path, "marker")) {
			t.Error("mirror content missing after restore")
		}
		if fileutil.Exists(root.BackupPath()) {
			t.Error("mirror should be consumed by restore")
		}
	}
}

func TestRestore_MoveIfPresent(t *testing.T) {
	_, roots := newTestData(t)
	m := NewManager(roots)

	if err := m.Create(testCtx(t)); err != nil {
		t.Fatal(err)
	}

	// Live dirs gone (e.g. wiped by a failed unpack)
	for _, root := range roots {
		if err := os.RemoveAll(root.Path); err != nil {
			t.Fatal(err)
		}
	}

	if err := m.Restore(testCtx(t), false); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	for _, root := range roots {
		if !fileutil.Exists(filepath.Join(root.Path, "marker")) {
			t.Errorf("root %s not restored", root.Base())
		}
	}
}

func TestStatus(t *testing.T) {
	_, roots := newTestData(t)
	m := NewManager(roots)

	statuses := m.Status()
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.LiveExists || s.BackupExists {
			t.Errorf("unexpected initial status %+v", s)
		}
	}

	if err := m.Create(testCtx(t)); err != nil {
		t.Fatal(err)
	}

	for _, s := range m.Status() {
		if !s.BackupExists {
			t.Errorf("mirror should exist after Create: %+v", s)
		}
	}
}
