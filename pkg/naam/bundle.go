package naam

import (
	"fmt"
	"path/filepath"

	"naamd/pkg/types"
)

// Bundle describes the versioned on-disk layout of a model bundle: its
// directory name under the model root and the per-language sub-model
// subpaths. Upgrading to a new bundle layout is a data change here, not a
// code change elsewhere.
type Bundle struct {
	Name     string
	SubPaths map[types.Lang]string
}

// DefaultBundle is the layout of the currently published bundle.
func DefaultBundle() Bundle {
	return Bundle{
		Name: "eng_and_hindi_models_v1",
		SubPaths: map[types.Lang]string{
			types.LangEnglish: "eng_model",
			types.LangHindi:   "hin_model",
		},
	}
}

// ModelDir resolves the directory of the lang sub-model beneath root.
func (b Bundle) ModelDir(root string, lang types.Lang) (string, error) {
	sub, ok := b.SubPaths[lang]
	if !ok {
		return "", fmt.Errorf("bundle %s has no sub-model for language %q", b.Name, lang)
	}
	return filepath.Join(root, b.Name, sub), nil
}
