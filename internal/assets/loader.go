package assets

// Format identifies how an outline is written.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// extensions are tried in order when an outline is looked up by name.
var extensions = []string{".yaml", ".yml", ".md"}

func formatFor(ext string) (Format, bool) {
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	}
	return "", false
}

// Outline is the raw source of a document outline.
type Outline struct {
	Name   string
	Format Format
	Data   []byte
}

// OutlineLoader defines the contract for loading outlines by name.
// Implementations may load from embedded assets, filesystem, etc.
type OutlineLoader interface {
	// LoadOutline loads an outline by name (without extension).
	// Returns ErrOutlineNotFound if the outline doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadOutline(name string) (*Outline, error)
}
