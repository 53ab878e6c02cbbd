// Package assets provides document outlines for the bakery plan generator.
// Outlines can be loaded from embedded files or custom filesystem paths.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutlineName is the outline generated when none is requested.
const DefaultOutlineName = "business-plan"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadOutline loads an embedded outline by name.
// The name should not include an extension or path components.
// Returns ErrOutlineNotFound if the outline does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadOutline(name string) (*Outline, error) {
	return defaultLoader.LoadOutline(name)
}

// Names lists the embedded outline names in lexical order.
func Names() []string {
	return defaultLoader.Names()
}

// LoadOutlineFile reads an outline from an arbitrary path. The format is
// picked from the file extension.
func LoadOutlineFile(path string) (*Outline, error) {
	format, ok := formatFor(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidAssetName, filepath.Ext(path))
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user supplied outline path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrOutlineNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Outline{Name: name, Format: format, Data: data}, nil
}
