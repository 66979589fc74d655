package desktop

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fling-dev/fling/internal/log"
)

// Candidate is one descriptor file found during a scan, tagged with the
// priority ordinal of the directory it came from.
type Candidate struct {
	Path     string
	Priority int
}

// DirState records a search directory's modification time for cache
// staleness checks. A directory that does not exist is recorded with
// Exists=false so that creating it later invalidates the cache.
type DirState struct {
	Path    string
	Exists  bool
	ModTime time.Time
}

// Scan enumerates candidate .desktop files across the given directories,
// highest priority first. One directory level only; symlinked files are
// accepted. Missing or unreadable directories are skipped, never an error.
func Scan(dirs []string) []Candidate {
	var candidates []Candidate
	for priority, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Debug(log.CatScan, "skipping search directory", "dir", dir, "reason", err)
			continue
		}
		found := 0
		for _, de := range entries {
			if de.IsDir() {
				continue
			}
			name := de.Name()
			if !strings.HasSuffix(name, ".desktop") {
				continue
			}
			candidates = append(candidates, Candidate{
				Path:     filepath.Join(dir, name),
				Priority: priority,
			})
			found++
		}
		log.Debug(log.CatScan, "scanned directory", "dir", dir, "found", found)
	}
	return candidates
}

// DirStates captures the current state of each search directory.
func DirStates(dirs []string) []DirState {
	states := make([]DirState, 0, len(dirs))
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			states = append(states, DirState{Path: dir})
			continue
		}
		states = append(states, DirState{Path: dir, Exists: true, ModTime: info.ModTime()})
	}
	return states
}

// LoadAll scans the directories and parses every candidate, dropping
// rejected descriptors. This is the build-phase pipeline: Scan feeds
// ParseFile feeds the registry.
func LoadAll(dirs []string) []Entry {
	candidates := Scan(dirs)
	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		entry, err := ParseFile(c.Path, c.Priority)
		if err != nil {
			log.Debug(log.CatParse, "rejected descriptor", "path", c.Path, "reason", err)
			continue
		}
		entries = append(entries, entry)
	}
	log.Info(log.CatScan, "descriptor load complete", "candidates", len(candidates), "parsed", len(entries))
	return entries
}
