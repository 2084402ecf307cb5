package assembly

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Copies a directory tree into the staging area, preserving permissions.
//
// Regular files, directories, and symlinks are copied. Other entry types
// (sockets, devices) are skipped.
func copyTree(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrCopy, src)
	}

	err = filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		return copyEntry(path, filepath.Join(dest, relPath), d)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	return nil
}

// Copies a single directory entry to its staging destination.
func copyEntry(hostPath, destPath string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	switch {
	case d.IsDir():
		return os.MkdirAll(destPath, info.Mode().Perm())

	case info.Mode().IsRegular():
		return copyFile(hostPath, destPath, info.Mode().Perm())

	case info.Mode()&os.ModeSymlink != 0:
		link, err := os.Readlink(hostPath)
		if err != nil {
			return err
		}
		return os.Symlink(link, destPath)

	default:
		slog.Debug("skipping irregular file", "path", hostPath, "mode", info.Mode())
		return nil
	}
}

// Copies a regular file, creating the destination with the given mode.
func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
