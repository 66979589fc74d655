package desktop

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Rejection reasons returned by Parse. Callers match with errors.Is; all of
// them are recoverable at the scan level (the entry is dropped and logged,
// never fatal).
var (
	ErrNoDesktopEntryGroup = errors.New("no [Desktop Entry] group")
	ErrNotApplication      = errors.New("Type is not Application")
	ErrMissingName         = errors.New("missing required key Name")
	ErrMissingExec         = errors.New("missing required key Exec")
	ErrMalformedLine       = errors.New("malformed line")
)

// mainGroup is the only group the launcher consults; all other groups
// (desktop actions, vendor extensions) are skipped for forward compatibility.
const mainGroup = "Desktop Entry"

// ParseFile reads and parses one descriptor file. priority is the index of
// the search directory the file was found in.
func ParseFile(path string, priority int) (Entry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from scanning configured dirs
	if err != nil {
		return Entry{}, fmt.Errorf("reading descriptor: %w", err)
	}
	entry, err := Parse(data, Locales())
	if err != nil {
		return Entry{}, err
	}
	entry.ID = EntryID(path)
	entry.SourceFile = path
	entry.SourcePriority = priority
	return entry, nil
}

// Parse parses descriptor contents into an Entry or a rejection reason.
// locales is the preference list from Locales(); localized keys like
// Name[fr_FR] override the plain key when they match.
//
// The ID, SourceFile and SourcePriority fields are left for the caller,
// which knows where the bytes came from.
func Parse(data []byte, locales []string) (Entry, error) {
	keys, err := parseGroup(data, mainGroup)
	if err != nil {
		return Entry{}, err
	}
	if keys == nil {
		return Entry{}, ErrNoDesktopEntryGroup
	}

	// Type defaults to Application only when absent; an explicit Link or
	// Directory descriptor is not launchable.
	if t, ok := keys.plain["Type"]; ok && t != "Application" {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotApplication, t)
	}

	name := keys.localized("Name", locales)
	if name == "" {
		return Entry{}, ErrMissingName
	}
	exec := keys.plain["Exec"]
	if strings.TrimSpace(exec) == "" {
		return Entry{}, ErrMissingExec
	}

	return Entry{
		Name:        name,
		GenericName: keys.localized("GenericName", locales),
		Comment:     keys.localized("Comment", locales),
		Exec:        StripFieldCodes(exec),
		TryExec:     keys.plain["TryExec"],
		Icon:        keys.plain["Icon"],
		Keywords:    splitList(keys.localized("Keywords", locales)),
		Terminal:    keys.plain["Terminal"] == "true",
		Hidden:      keys.plain["Hidden"] == "true" || keys.plain["NoDisplay"] == "true",
		OnlyShowIn:  splitList(keys.plain["OnlyShowIn"]),
		NotShowIn:   splitList(keys.plain["NotShowIn"]),
		Path:        keys.plain["Path"],
	}, nil
}

// groupKeys holds the raw key/value pairs of a single group. plain maps
// unlocalized keys, locs maps "Key[locale]" lookups.
type groupKeys struct {
	plain map[string]string
	locs  map[string]string
}

// localized resolves a key against the locale preference list, falling back
// to the plain key.
func (g *groupKeys) localized(key string, locales []string) string {
	for _, loc := range locales {
		if v, ok := g.locs[key+"["+loc+"]"]; ok {
			return v
		}
	}
	return g.plain[key]
}

// parseGroup scans the descriptor line by line and collects the key/value
// pairs of the named group. Returns nil keys when the group never appears.
func parseGroup(data []byte, group string) (*groupKeys, error) {
	var (
		keys      *groupKeys
		inGroup   bool
		seenGroup bool
	)

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("%w %d: unterminated group header", ErrMalformedLine, lineNo)
			}
			header := line[1 : len(line)-1]
			inGroup = header == group
			if inGroup {
				if seenGroup {
					// Duplicate group header is structurally invalid.
					return nil, fmt.Errorf("%w %d: duplicate [%s] group", ErrMalformedLine, lineNo, group)
				}
				seenGroup = true
				keys = &groupKeys{
					plain: make(map[string]string),
					locs:  make(map[string]string),
				}
			}
			continue
		}

		if !inGroup {
			continue // keys of other groups are ignored wholesale
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, fmt.Errorf("%w %d: missing '='", ErrMalformedLine, lineNo)
		}
		key := strings.TrimSpace(line[:eq])
		value := unescapeValue(strings.TrimSpace(line[eq+1:]))
		if key == "" {
			return nil, fmt.Errorf("%w %d: empty key", ErrMalformedLine, lineNo)
		}

		if strings.HasSuffix(key, "]") && strings.Contains(key, "[") {
			keys.locs[key] = value
		} else {
			keys.plain[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning descriptor: %w", err)
	}

	return keys, nil
}

// unescapeValue applies the desktop-entry escape sequences:
// \s (space), \n, \t, \r and \\.
func unescapeValue(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			// Unknown escape: keep verbatim.
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// splitList splits a semicolon-delimited multi-string value, honoring the
// \; escape for literal semicolons.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var (
		items []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ';':
			cur.WriteByte(';')
			i++
		case s[i] == ';':
			if cur.Len() > 0 {
				items = append(items, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(s[i])
		}
	}
	if cur.Len() > 0 {
		items = append(items, cur.String())
	}
	return items
}
