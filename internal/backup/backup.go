package backup

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/sublipack/sublipack/internal/logging"
	"github.com/sublipack/sublipack/internal/paths"
	"github.com/sublipack/sublipack/pkg/fileutil"
)

// ErrLiveDirExists indicates a restore would overwrite a live directory.
var ErrLiveDirExists = errors.New("live directory exists")

// Manager creates, removes, and restores mirror backups for a set of
// packing roots.
type Manager struct {
	roots []paths.Root
}

// NewManager creates a Manager for the given packing roots.
func NewManager(roots []paths.Root) *Manager {
	return &Manager{roots: roots}
}

// Create refreshes the mirrors: stale mirrors are removed first, then each
// existing root is copied to <root>.bak. Roots that do not exist are
// skipped. Mirror removal failures are logged and do not abort the copy;
// the copy itself is then skipped because the destination still exists.
func (m *Manager) Create(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	m.removeMirrors(ctx)

	for _, root := range m.roots {
		if !fileutil.Exists(root.Path) {
			logger.Debug("skipping missing root", "path", root.Path)
			continue
		}
		if fileutil.Exists(root.BackupPath()) {
			logger.Warn("mirror still present, skipping copy", "path", root.BackupPath())
			continue
		}

		logger.Info("copying to mirror", "from", root.Path, "to", root.BackupPath())
		if err := fileutil.CopyTree(root.Path, root.BackupPath()); err != nil {
			return errors.Wrapf(err, "mirroring %s", root.Path)
		}
	}

	return nil
}

// Remove deletes all mirrors. Mirrors that do not exist are ignored.
func (m *Manager) Remove(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	var firstErr error
	for _, root := range m.roots {
		logger.Info("removing mirror", "path", root.BackupPath())
		if err := fileutil.RemoveTree(root.BackupPath()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// removeMirrors is the best-effort removal used by Create; errors are
// logged, not returned.
func (m *Manager) removeMirrors(ctx context.Context) {
	logger := logging.FromContext(ctx)
	for _, root := range m.roots {
		if err := fileutil.RemoveTree(root.BackupPath()); err != nil {
			logger.Warn("removing stale mirror failed", "path", root.BackupPath(), "error", err)
		}
	}
}

// Restore moves each existing mirror back to its root path (move-if-present).
// When the live directory still exists the mirror is left untouched and
// ErrLiveDirExists is returned, unless force is set, in which case the live
// directory is removed first.
func (m *Manager) Restore(ctx context.Context, force bool) error {
	logger := logging.FromContext(ctx)

	for _, root := range m.roots {
		if !fileutil.Exists(root.BackupPath()) {
			logger.Debug("no mirror to restore", "path", root.BackupPath())
			continue
		}

		if fileutil.Exists(root.Path) {
			if !force {
				return errors.Wrapf(ErrLiveDirExists, "%s", root.Path)
			}
			logger.Info("removing live directory", "path", root.Path)
			if err := fileutil.RemoveTree(root.Path); err != nil {
				return errors.Wrapf(err, "clearing %s", root.Path)
			}
		}

		logger.Info("restoring mirror", "from", root.BackupPath(), "to", root.Path)
		if err := fileutil.MoveTree(root.BackupPath(), root.Path); err != nil {
			return errors.Wrapf(err, "restoring %s", root.Path)
		}
	}

	return nil
}

// MirrorStatus describes the on-disk state of one root and its mirror.
type MirrorStatus struct {
	// Path is the live directory path.
	Path string `json:"path"`

	// BackupPath is the mirror path.
	BackupPath string `json:"backup_path"`

	// LiveExists reports whether the live directory is present.
	LiveExists bool `json:"live_exists"`

	// BackupExists reports whether the mirror is present.
	BackupExists bool `json:"backup_exists"`
}

// Status reports the state of every root/mirror pair.
func (m *Manager) Status() []MirrorStatus {
	statuses := make([]MirrorStatus, 0, len(m.roots))
	for _, root := range m.roots {
		statuses = append(statuses, MirrorStatus{
			Path:         root.Path,
			BackupPath:   root.BackupPath(),
			LiveExists:   fileutil.Exists(root.Path),
			BackupExists: fileutil.Exists(root.BackupPath()),
		})
	}
	return statuses
}
