// Package fsutil defines a set of internal utility functions used to
// move and replace files during package reorganization.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
)

// Exists reports whether path exists, regardless of its type.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MoveFile moves src to dst, replacing dst when it already exists.
func MoveFile(src, dst string) error {
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

// ReplaceDir moves the directory src to dst, removing any existing dst
// wholesale first. Contents are not merged.
func ReplaceDir(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	return os.Rename(src, dst)
}

// RemoveIfPresent deletes path when it exists, reporting whether a
// removal happened.
func RemoveIfPresent(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
