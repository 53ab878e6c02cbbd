package assets

import "fmt"

// MaxAssetNameLength bounds outline names.
const MaxAssetNameLength = 64

// ValidateAssetName accepts outline names made of ASCII letters, digits,
// hyphens and underscores. Loaders append the extension themselves, so dots
// and separators are rejected along with anything that could leave the
// outlines directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, MaxAssetNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
