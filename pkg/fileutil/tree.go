package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Exists reports whether path exists (file or directory).
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CopyTree recursively copies the directory tree at src to dst.
// Symlinks are recreated as symlinks, not followed. File permissions are
// preserved. dst must not already exist.
func CopyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", src)
	}
	if Exists(dst) {
		return errors.Newf("%s already exists", dst)
	}
	return copyTree(src, dst, info)
}

func copyTree(src, dst string, srcInfo os.FileInfo) error {
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := entry.Info()
		if err != nil {
			return errors.Wrapf(err, "stat %s", srcPath)
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			if err := copySymlink(srcPath, dstPath); err != nil {
				return err
			}
		case info.IsDir():
			if err := copyTree(srcPath, dstPath, info); err != nil {
				return err
			}
		default:
			if err := copyFileContents(srcPath, dstPath, info.Mode().Perm()); err != nil {
				return err
			}
		}
	}

	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, "reading symlink %s", src)
	}
	if err := os.Symlink(target, dst); err != nil {
		return errors.Wrapf(err, "creating symlink %s", dst)
	}
	return nil
}

func copyFileContents(src, dst string, perm os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying %s", src)
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dst)
	}

	return nil
}

// MoveTree moves the directory at src to dst via rename.
// src and dst are expected to be on the same filesystem (backup mirrors sit
// next to the directories they mirror).
func MoveTree(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return errors.Wrapf(err, "moving %s to %s", src, dst)
	}
	return nil
}

// RemoveTree removes the directory tree at path.
// Removing a path that does not exist is not an error.
func RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.Wrapf(err, "removing %s", path)
	}
	return nil
}
