package inertia

import (
	"encoding/json"
	"os"
	"path"
	"sync"
)

// ManifestChunk is one entry of a Vite build manifest.
type ManifestChunk struct {
	File           string   `json:"file"`
	Src            string   `json:"src,omitempty"`
	IsEntry        bool     `json:"isEntry,omitempty"`
	IsDynamicEntry bool     `json:"isDynamicEntry,omitempty"`
	CSS            []string `json:"css,omitempty"`
	Assets         []string `json:"assets,omitempty"`
	Imports        []string `json:"imports,omitempty"`
	DynamicImports []string `json:"dynamicImports,omitempty"`
}

// Manifest maps source entry keys to built asset chunks.
type Manifest map[string]ManifestChunk

// AssetBundle is the resolved JS entry and its CSS files for one
// adapter instance, derived once from config and immutable thereafter.
type AssetBundle struct {
	JSFile   string
	CSSFiles []string
}

// manifestCache is the process-scoped manifest store. A given path is
// read and parsed at most once for the process lifetime; a manifest that
// failed to load stays failed, it is never retried. Concurrent readers
// are safe: each path gets a single-flight entry.
type manifestCache struct {
	entries sync.Map // path -> *manifestEntry
}

type manifestEntry struct {
	once     sync.Once
	manifest Manifest
	err      error
}

func newManifestCache() *manifestCache {
	return &manifestCache{}
}

func (c *manifestCache) load(path string) (Manifest, error) {
	v, _ := c.entries.LoadOrStore(path, &manifestEntry{})
	entry := v.(*manifestEntry)
	entry.once.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			entry.err = err
			return
		}
		entry.err = json.Unmarshal(data, &entry.manifest)
	})
	return entry.manifest, entry.err
}

// resolveAssets derives the asset bundle for one adapter instance.
//
// Development without SSR composes the dev-server URL directly, no I/O.
// Production - or any configuration with SSR enabled - reads through the
// manifest cache; a missing manifest or entry is an AssetError, which is
// fatal for the request.
func resolveAssets(cfg Config, cache *manifestCache) (AssetBundle, error) {
	if cfg.Environment != EnvProduction && !cfg.SSREnabled {
		return AssetBundle{
			JSFile: cfg.DevServerURL + "/" + cfg.RootDir + "/" + cfg.Entrypoint,
		}, nil
	}

	manifest, err := cache.load(cfg.ManifestPath)
	if err != nil {
		return AssetBundle{}, &AssetError{Manifest: cfg.ManifestPath, Err: err}
	}

	entry := cfg.RootDir + "/" + cfg.Entrypoint
	chunk, ok := manifest[entry]
	if !ok {
		return AssetBundle{}, &AssetError{Manifest: cfg.ManifestPath, Entry: entry}
	}

	bundle := AssetBundle{JSFile: assetURL(cfg.AssetsPrefix, chunk.File)}
	for _, css := range chunk.CSS {
		bundle.CSSFiles = append(bundle.CSSFiles, assetURL(cfg.AssetsPrefix, css))
	}
	return bundle, nil
}

// assetURL joins a manifest-relative file path with the public prefix
// into an absolute root-relative URL. Works with an empty prefix too.
func assetURL(prefix, file string) string {
	return path.Join("/", prefix, file)
}
