package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Move moves a file or directory from src to dst.
// It first attempts to use os.Rename for atomic operation.
// If that fails due to cross-filesystem boundaries, it falls back to copy + delete.
// Returns an error if the move operation fails.
func Move(src, dst string) error {
	if src == "" || dst == "" {
		return fmt.Errorf("source and destination paths cannot be empty")
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %s: %w", src, err)
	}

	// Ensure destination directory exists for files
	if !srcInfo.IsDir() {
		if err := EnsureFileDir(dst); err != nil {
			return fmt.Errorf("failed to create destination directory for %s: %w", dst, err)
		}
	}

	// Try atomic rename first (works for both files and directories)
	err = os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if !isCrossFilesystemError(err) {
		return fmt.Errorf("failed to rename %s to %s: %w", src, dst, err)
	}

	// Cross-filesystem move required, fall back to copy + delete
	if srcInfo.IsDir() {
		return moveDirectory(src, dst)
	}
	return moveFile(src, dst)
}

// isCrossFilesystemError determines if an error from os.Rename indicates
// a cross-filesystem boundary that requires fallback to copy+delete.
func isCrossFilesystemError(err error) bool {
	if err == nil {
		return false
	}

	var linkError *os.LinkError
	if errors.As(err, &linkError) {
		if errno, ok := linkError.Err.(syscall.Errno); ok {
			return errno == syscall.EXDEV
		}
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return isCrossFilesystemError(pathErr.Err)
	}

	// Fallback string matching for platforms where EXDEV doesn't surface as an errno
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "cross-device") || strings.Contains(errMsg, "cross device")
}

// moveFile handles moving a single file across filesystem boundaries.
func moveFile(src, dst string) error {
	if err := Copy(src, dst); err != nil {
		return fmt.Errorf("failed to copy file %s to %s: %w", src, dst, err)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		_ = os.Remove(src)
		return fmt.Errorf("failed to stat source file after copy: %w", err)
	}

	// Preserve file permissions and modification time
	if err := os.Chmod(dst, srcInfo.Mode()); err != nil {
		_ = os.Remove(src)
		return fmt.Errorf("failed to set permissions on %s: %w", dst, err)
	}

	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		_ = os.Remove(src)
		return fmt.Errorf("failed to set modification time on %s: %w", dst, err)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source file %s after copy: %w", src, err)
	}

	return nil
}

// moveDirectory handles moving a directory across filesystem boundaries.
func moveDirectory(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory %s: %w", src, err)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", dst, err)
	}

	err = filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("failed to get dir info for %s: %w", path, err)
			}
			if err := os.MkdirAll(dstPath, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}

		if err := Copy(path, dstPath); err != nil {
			return fmt.Errorf("failed to copy file %s to %s: %w", path, dstPath, err)
		}

		srcFileInfo, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info for %s: %w", path, err)
		}
		if err := os.Chmod(dstPath, srcFileInfo.Mode()); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", dstPath, err)
		}
		if err := os.Chtimes(dstPath, srcFileInfo.ModTime(), srcFileInfo.ModTime()); err != nil {
			return fmt.Errorf("failed to set modification time on %s: %w", dstPath, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Removal happens outside the walk so traversal never races its own deletes
	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("failed to remove source directory %s after copy: %w", src, err)
	}

	return nil
}

// Copy copies the contents of srcFile to dstFile.
func Copy(srcFile, dstFile string) error {
	src, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer src.Close()

	dst, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy from %s to %s: %w", srcFile, dstFile, err)
	}

	return nil
}

// CreateFilePerm creates a new file with the specified permissions.
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}
