package assets

import "errors"

// AssetResolver looks an outline up in an ordered list of loaders: the
// custom directory when one is configured, then the embedded outlines.
type AssetResolver struct {
	loaders []OutlineLoader
}

var _ OutlineLoader = (*AssetResolver)(nil)

// NewAssetResolver returns a resolver over the embedded outlines, preceded by
// a FilesystemLoader when customBasePath is set.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		fs, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, fs)
	}
	r.loaders = append(r.loaders, NewEmbeddedLoader())
	return r, nil
}

// LoadOutline returns the first loader's outline. Only ErrOutlineNotFound
// moves on to the next loader; any other error is returned as is.
func (r *AssetResolver) LoadOutline(name string) (*Outline, error) {
	var err error
	for _, l := range r.loaders {
		var o *Outline
		o, err = l.LoadOutline(name)
		if err == nil || !errors.Is(err, ErrOutlineNotFound) {
			return o, err
		}
	}
	return nil, err
}

// Layers reports how many loaders are consulted.
func (r *AssetResolver) Layers() int {
	return len(r.loaders)
}
