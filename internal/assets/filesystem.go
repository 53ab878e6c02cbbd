package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemLoader reads outlines from {basePath}/outlines.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
}

var _ OutlineLoader = (*FilesystemLoader)(nil)

// NewFilesystemLoader returns ErrInvalidBasePath unless basePath is a
// readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{basePath: abs}, nil
}

// LoadOutline tries {name}.yaml, {name}.yml and {name}.md in order.
func (f *FilesystemLoader) LoadOutline(name string) (*Outline, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	for _, ext := range extensions {
		path, err := f.contained(filepath.Join(f.basePath, "outlines", name+ext))
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path) // #nosec G304 -- contained in basePath
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		format, _ := formatFor(ext)
		return &Outline{Name: name, Format: format, Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrOutlineNotFound, name)
}

// contained resolves symlinks in path and returns ErrPathTraversal when the
// target lies outside basePath. Paths that do not exist are returned as is.
func (f *FilesystemLoader) contained(path string) (string, error) {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		real = path
	}
	rel, err := filepath.Rel(f.basePath, real)
	if err != nil || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, filepath.Base(path), f.basePath)
	}
	return real, nil
}
