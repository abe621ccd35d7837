package naam

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"naamd/pkg/classifier"
	"naamd/pkg/types"
)

// Fetcher is the artifact-fetching collaborator. Satisfied by
// *artifact.Fetcher.
type Fetcher interface {
	Ensure(ctx context.Context, targetDir, bundleName string, forceRefresh bool) (string, error)
}

// Loader deserializes a language sub-model from its directory.
type Loader func(dir string) (classifier.Classifier, error)

// CacheOptions configures a Cache. Fetcher and ModelDir are required.
type CacheOptions struct {
	Fetcher  Fetcher
	ModelDir string
	// Loader defaults to the built-in classifier loader.
	Loader Loader
	// Bundle defaults to DefaultBundle().
	Bundle Bundle
	// ResultCacheSize enables an LRU memo of per-name results when > 0.
	ResultCacheSize int
	Logger          zerolog.Logger
}

// Cache is the model lifecycle controller: it tracks which language's model
// is resident, decides when to (re)fetch and (re)load the artifact, and
// serves predictions through the resident model. Construct one per process
// and share it; all state transitions are serialized by an internal mutex.
type Cache struct {
	mu      sync.Mutex
	fetcher Fetcher
	loader  Loader
	bundle  Bundle
	dir     string
	log     zerolog.Logger

	loaded    bool
	lang      types.Lang
	model     classifier.Classifier
	modelRoot string

	loadsTotal uint64
	cacheHits  uint64
	lastErr    string

	results *lru.Cache[string, types.Prediction]

	started time.Time
}

// NewCache builds a Cache in the empty state; nothing is downloaded or
// loaded until the first prediction.
func NewCache(opts CacheOptions) *Cache {
	loader := opts.Loader
	if loader == nil {
		loader = func(dir string) (classifier.Classifier, error) {
			return classifier.Load(dir)
		}
	}
	bundle := opts.Bundle
	if bundle.Name == "" {
		bundle = DefaultBundle()
	}
	c := &Cache{
		fetcher: opts.Fetcher,
		loader:  loader,
		bundle:  bundle,
		dir:     opts.ModelDir,
		log:     opts.Logger,
		started: time.Now(),
	}
	if opts.ResultCacheSize > 0 {
		// Constructor only fails on a non-positive size, checked above.
		c.results, _ = lru.New[string, types.Prediction](opts.ResultCacheSize)
	}
	return c
}

// ensureModel returns the classifier serving lang, loading or swapping the
// resident model when the language differs, nothing is loaded yet, or latest
// forces a refresh. A forced refresh re-fetches the artifact and reloads the
// in-memory model even for the resident language. The returned handle is a
// snapshot: a later swap does not invalidate it mid-batch.
func (c *Cache) ensureModel(ctx context.Context, lang types.Lang, latest bool) (classifier.Classifier, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.lang == lang && !latest {
		c.cacheHits++
		cacheHitsTotal.Inc()
		return c.model, nil
	}

	root, err := c.fetcher.Ensure(ctx, c.dir, c.bundle.Name, latest)
	if err != nil {
		err = ErrArtifactUnavailable(err)
		c.lastErr = err.Error()
		return nil, err
	}
	modelDir, err := c.bundle.ModelDir(root, lang)
	if err != nil {
		err = ErrModelLoad(lang, err)
		c.lastErr = err.Error()
		return nil, err
	}

	c.log.Info().Str("lang", string(lang)).Str("dir", modelDir).Msg("loading model")
	model, err := c.loader(modelDir)
	if err != nil {
		err = ErrModelLoad(lang, err)
		c.lastErr = err.Error()
		return nil, err
	}

	// Commit atomically under the lock; a reader can never observe the new
	// language paired with the old model handle.
	c.loaded = true
	c.lang = lang
	c.model = model
	c.modelRoot = root
	c.lastErr = ""
	c.loadsTotal++
	modelLoadsTotal.WithLabelValues(string(lang)).Inc()
	if c.results != nil {
		c.results.Purge()
	}
	return model, nil
}

// Status reports a read-only snapshot of the cache for /status.
func (c *Cache) Status() types.StatusResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp := types.StatusResponse{
		Loaded:         c.loaded,
		Bundle:         c.bundle.Name,
		LoadsTotal:     c.loadsTotal,
		CacheHitsTotal: c.cacheHits,
		LastError:      c.lastErr,
		UptimeSeconds:  int64(time.Since(c.started).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	if c.loaded {
		resp.Lang = string(c.lang)
		resp.ModelRoot = c.modelRoot
	}
	return resp
}

// Loaded reports whether any model is resident. Used by the readiness probe.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
