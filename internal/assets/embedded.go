package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed outlines/*
var outlines embed.FS

// EmbeddedLoader loads outlines from the embedded filesystem.
// Implements OutlineLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadOutline loads an embedded outline by name, trying each known extension.
func (e *EmbeddedLoader) LoadOutline(name string) (*Outline, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	for _, ext := range extensions {
		content, err := outlines.ReadFile("outlines/" + name + ext)
		if err != nil {
			continue
		}
		format, _ := formatFor(ext)
		return &Outline{Name: name, Format: format, Data: content}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrOutlineNotFound, name)
}

// Names lists the embedded outlines without extensions.
func (e *EmbeddedLoader) Names() []string {
	entries, err := fs.ReadDir(outlines, "outlines")
	if err != nil {
		return nil
	}
	seen := make(map[string]bool, len(entries))
	var names []string
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if _, ok := formatFor(ext); !ok || entry.IsDir() {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ OutlineLoader = (*EmbeddedLoader)(nil)
