package desktop

import (
	"path/filepath"
	"strings"
)

// Entry is the parsed, validated representation of one launchable
// application. Only typed fields leave the parser; raw key/value maps
// never escape this package.
type Entry struct {
	// ID is the desktop-file ID derived from the descriptor path: the file
	// basename with the .desktop suffix stripped. Entries with the same ID
	// found in multiple search directories are the same logical application.
	ID string

	Name        string
	GenericName string
	Comment     string

	// Exec is the launch command line with field codes already stripped.
	Exec    string
	TryExec string

	Icon     string
	Keywords []string

	Terminal bool

	// Hidden is true when the descriptor sets Hidden=true (logically
	// deleted) or NoDisplay=true. Hidden entries never become visible.
	Hidden bool

	OnlyShowIn []string
	NotShowIn  []string

	// Path is the working directory for the launched process, if any.
	Path string

	// SourcePriority is the index of the search directory the descriptor was
	// found in; lower means higher priority.
	SourcePriority int

	// SourceFile is the absolute descriptor path the entry was parsed from.
	SourceFile string
}

// EntryID derives the desktop-file ID for a descriptor path.
func EntryID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".desktop")
}

// SearchTerms returns the auxiliary tokens matched by the filter engine but
// not displayed: keywords plus the generic name.
func (e Entry) SearchTerms() []string {
	if e.GenericName == "" {
		return e.Keywords
	}
	terms := make([]string, 0, len(e.Keywords)+1)
	terms = append(terms, e.Keywords...)
	terms = append(terms, e.GenericName)
	return terms
}

// ShownOnDesktop reports whether the entry may be shown on the given desktop
// environment per its OnlyShowIn/NotShowIn lists. An empty desktop list
// (unknown environment) always passes.
func (e Entry) ShownOnDesktop(current []string) bool {
	if len(current) == 0 {
		return true
	}
	if len(e.OnlyShowIn) > 0 && !intersects(e.OnlyShowIn, current) {
		return false
	}
	if intersects(e.NotShowIn, current) {
		return false
	}
	return true
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
