package assets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOutline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		outlineName string
		wantErr     error
	}{
		{
			name:        "default outline returns content",
			outlineName: DefaultOutlineName,
			wantErr:     nil,
		},
		{
			name:        "nonexistent outline returns ErrOutlineNotFound",
			outlineName: "nonexistent",
			wantErr:     ErrOutlineNotFound,
		},
		{
			name:        "empty name returns ErrInvalidAssetName",
			outlineName: "",
			wantErr:     ErrInvalidAssetName,
		},
		{
			name:        "path traversal returns ErrInvalidAssetName",
			outlineName: "../secret",
			wantErr:     ErrInvalidAssetName,
		},
		{
			name:        "extension in name returns ErrInvalidAssetName",
			outlineName: "business-plan.yaml",
			wantErr:     ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadOutline(tt.outlineName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadOutline(%q) error = %v, want %v", tt.outlineName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadOutline(%q) unexpected error: %v", tt.outlineName, err)
			}
			if got.Name != tt.outlineName || got.Format != FormatYAML {
				t.Errorf("LoadOutline() = {%q, %q}, want {%q, yaml}", got.Name, got.Format, tt.outlineName)
			}
			if len(got.Data) == 0 {
				t.Error("LoadOutline() returned empty content")
			}
		})
	}
}

func TestLoadOutline_BusinessPlanContent(t *testing.T) {
	t.Parallel()

	o, err := LoadOutline(DefaultOutlineName)
	if err != nil {
		t.Fatalf("LoadOutline() error = %v", err)
	}

	for _, want := range []string{
		"Laboratorio di Pasticceria Artigianale Inclusiva e Salutistica",
		"Pagina {page}",
		"blocks:",
		"CONCLUSIONI",
	} {
		if !bytes.Contains(o.Data, []byte(want)) {
			t.Errorf("business plan outline missing %q", want)
		}
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	names := Names()
	found := false
	for _, n := range names {
		if n == DefaultOutlineName {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, want it to include %q", names, DefaultOutlineName)
	}
}

func TestLoadOutlineFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		return p
	}

	tests := []struct {
		name       string
		path       string
		wantFormat Format
		wantName   string
		wantErr    error
	}{
		{
			name:       "yaml extension",
			path:       write("plan.yaml", "blocks: []"),
			wantFormat: FormatYAML,
			wantName:   "plan",
		},
		{
			name:       "yml extension",
			path:       write("short.yml", "blocks: []"),
			wantFormat: FormatYAML,
			wantName:   "short",
		},
		{
			name:       "markdown extension",
			path:       write("notes.md", "# Titolo"),
			wantFormat: FormatMarkdown,
			wantName:   "notes",
		},
		{
			name:    "unsupported extension",
			path:    write("plan.txt", "x"),
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "missing file",
			path:    filepath.Join(dir, "missing.yaml"),
			wantErr: ErrOutlineNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadOutlineFile(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadOutlineFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadOutlineFile() unexpected error: %v", err)
			}
			if got.Format != tt.wantFormat || got.Name != tt.wantName {
				t.Errorf("LoadOutlineFile() = {%q, %q}, want {%q, %q}", got.Name, got.Format, tt.wantName, tt.wantFormat)
			}
		})
	}
}

func TestEmbeddedLoader_ImplementsOutlineLoader(t *testing.T) {
	t.Parallel()

	var _ OutlineLoader = NewEmbeddedLoader()
}
