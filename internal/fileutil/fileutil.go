// Package fileutil writes build artifacts and classifies paths.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for temp file names.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// WriteTempFile stores data in a new file named flowpdf-*.<ext> in the
// system temp directory. The caller runs cleanup once the file is consumed.
func WriteTempFile(data []byte, ext string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(ext); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", "flowpdf-*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}

// AtomicError reports which step of WriteAtomic failed.
type AtomicError struct {
	Op   string // "create", "write", "sync", "close", "chmod", "rename"
	Path string
	Err  error
}

func (e *AtomicError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *AtomicError) Unwrap() error {
	return e.Err
}

// WriteAtomic writes data to path through a temporary file in the same
// directory, renamed into place on success. On failure no file is left at
// path and the temporary file is removed. The returned error is an
// *AtomicError.
func WriteAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &AtomicError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	// Released unconditionally; removal is a no-op after a successful rename.
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return &AtomicError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &AtomicError{Op: "sync", Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &AtomicError{Op: "close", Path: path, Err: err}
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return &AtomicError{Op: "chmod", Path: path, Err: err}
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return &AtomicError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// ValidateExtension rejects extensions that are empty or could escape the
// temp directory.
func ValidateExtension(ext string) error {
	switch {
	case ext == "":
		return ErrExtensionEmpty
	case strings.ContainsAny(ext, "/\\\x00"):
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists reports whether path is an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath reports whether s names a file ("./plan.yaml", "C:\plan.md")
// rather than an outline or config name ("business-plan"): any slash or
// backslash makes it a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
