package naam

import (
	"github.com/rs/zerolog"

	"naamd/pkg/artifact"
)

// Default returns a Cache wired to the published bundle endpoint (or the
// NAAMD_MODEL_URL override) with the standard bundle layout, storing
// downloads under modelDir. This is the one-line library entry point:
//
//	cache := naam.Default(dir, log)
//	rows, err := cache.Predict(ctx, naam.Single("Shah Rukh Khan"), types.LangEnglish, false)
func Default(modelDir string, log zerolog.Logger) *Cache {
	return NewCache(CacheOptions{
		Fetcher:  artifact.New("", 0, log),
		ModelDir: modelDir,
		Logger:   log,
	})
}
