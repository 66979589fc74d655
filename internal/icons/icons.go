// Package icons resolves icon names from desktop entries to files on disk.
// The launcher renders no images itself; resolved paths are persisted in the
// cache and shown by `fling cache inspect`. Lookups hit the filesystem once
// per name: results, including misses, are memoized.
package icons

import (
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fling-dev/fling/internal/log"
)

var extensions = []string{".svg", ".png", ".xpm"}

// Resolver maps icon names to absolute file paths.
type Resolver struct {
	dirs []string
	memo *gocache.Cache
}

// New returns a resolver searching the standard hicolor theme sizes and the
// pixmaps fallback, under every data dir that holds descriptors.
func New(dataDirs []string) *Resolver {
	var dirs []string
	for _, dataDir := range dataDirs {
		// dataDir is ".../applications"; icons live beside it.
		base := filepath.Dir(dataDir)
		for _, sub := range []string{
			"icons/hicolor/scalable/apps",
			"icons/hicolor/256x256/apps",
			"icons/hicolor/128x128/apps",
			"icons/hicolor/64x64/apps",
			"icons/hicolor/48x48/apps",
			"icons",
		} {
			dirs = append(dirs, filepath.Join(base, sub))
		}
	}
	dirs = append(dirs, "/usr/share/pixmaps")

	return &Resolver{
		dirs: dirs,
		memo: gocache.New(time.Hour, 2*time.Hour),
	}
}

// Resolve returns the file backing an icon name, or ("", false) when nothing
// matches. Absolute paths pass through untouched when the file exists.
func (r *Resolver) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if cached, found := r.memo.Get(name); found {
		path := cached.(string)
		return path, path != ""
	}

	path, ok := r.lookup(name)
	// Negative results are cached too; a missing icon stays missing for the
	// session.
	r.memo.Set(name, path, gocache.DefaultExpiration)
	return path, ok
}

func (r *Resolver) lookup(name string) (string, bool) {
	if filepath.IsAbs(name) {
		if fileExists(name) {
			return name, true
		}
		return "", false
	}

	for _, dir := range r.dirs {
		// Names sometimes arrive with an extension already attached.
		if filepath.Ext(name) != "" {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, true
			}
			continue
		}
		for _, ext := range extensions {
			if path := filepath.Join(dir, name+ext); fileExists(path) {
				return path, true
			}
		}
	}

	log.Debug(log.CatUI, "icon not found", "name", name)
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
