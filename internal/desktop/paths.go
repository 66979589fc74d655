// Package desktop discovers and parses freedesktop .desktop application
// descriptors. It implements the scanner and parser halves of the launcher
// pipeline: DataDirs resolves the ordered search path list, Scan enumerates
// candidate descriptor files, and Parse turns file contents into typed
// entries or rejection reasons.
package desktop

import (
	"os"
	"path/filepath"
	"strings"
)

// defaultSystemDataDirs is the XDG fallback when $XDG_DATA_DIRS is unset.
const defaultSystemDataDirs = "/usr/local/share:/usr/share"

// DataDirs returns the ordered list of application descriptor directories,
// highest priority first: $XDG_DATA_HOME/applications (per-user overrides),
// then each $XDG_DATA_DIRS element with /applications appended.
// Duplicates are removed, first occurrence wins. Directories are not
// required to exist.
func DataDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = defaultSystemDataDirs
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}

	return dedupe(dirs)
}

func dedupe(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := dirs[:0]
	for _, dir := range dirs {
		clean := filepath.Clean(dir)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

// CurrentDesktop returns the colon-separated $XDG_CURRENT_DESKTOP components,
// or nil when the variable is unset. Used to honor OnlyShowIn/NotShowIn.
func CurrentDesktop() []string {
	raw := os.Getenv("XDG_CURRENT_DESKTOP")
	if raw == "" {
		return nil
	}
	var desktops []string
	for _, d := range strings.Split(raw, ":") {
		if d != "" {
			desktops = append(desktops, d)
		}
	}
	return desktops
}

// Locales returns the locale preference list derived from the environment,
// most specific first: for LC_MESSAGES=en_US.UTF-8 it yields ["en_US", "en"].
// LC_ALL takes precedence over LC_MESSAGES, which takes precedence over LANG.
func Locales() []string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		raw := os.Getenv(name)
		if raw == "" || raw == "C" || raw == "POSIX" {
			continue
		}
		return expandLocale(raw)
	}
	return nil
}

func expandLocale(raw string) []string {
	// Strip encoding and modifier: ll_CC.ENC@mod -> ll_CC
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '@'); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" {
		return nil
	}
	locales := []string{raw}
	if i := strings.IndexByte(raw, '_'); i >= 0 {
		locales = append(locales, raw[:i])
	}
	return locales
}
