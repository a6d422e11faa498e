package lib

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DestinationDirMode is the mode used for directories created on the way to
// a destination file.
const DestinationDirMode os.FileMode = 0o700

// EnsureDir creates path and any missing parents with perm. It returns nil if
// the directory already exists and an error if any component is not a directory.
func EnsureDir(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// RestoreDirMode applies the permission and special bits of the directory
// src to dst.
func RestoreDirMode(src, dst string) error {
	meta, err := lstatSource(src)
	if err != nil {
		return fmt.Errorf("stat directory %s: %w", src, err)
	}
	if err := chmod(dst, meta.Mode); err != nil {
		return fmt.Errorf("chmod directory %s: %w", dst, err)
	}
	return nil
}

// IsWithin reports whether path is root itself or lies below it. Both must
// be absolute or both relative to the same directory. Names that merely
// start with "..", such as "..cache", are inside.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ResolvePath returns path with symlinks resolved in its deepest existing
// ancestor. Components that do not exist yet are appended unchanged, so a
// destination about to be created compares correctly against resolved paths.
func ResolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var missing []string
	current := abs
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			parts := append([]string{resolved}, missing...)
			return filepath.Join(parts...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs, nil
		}
		missing = append([]string{filepath.Base(current)}, missing...)
		current = parent
	}
}
