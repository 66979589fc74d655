// Package registry holds the authoritative in-memory set of launchable
// entries. A registry is built once from a scan (or loaded from cache),
// applies the user-over-system shadowing rule, and is immutable afterward;
// a rescan produces a replacement registry, never an in-place mutation.
package registry

import (
	"sort"
	"strings"

	"github.com/fling-dev/fling/internal/desktop"
	"github.com/fling-dev/fling/internal/log"
)

// Item is one registry entry together with its recorded usage count.
type Item struct {
	desktop.Entry
	LaunchCount int
}

// Options configures a registry build.
type Options struct {
	// CurrentDesktop filters entries by their OnlyShowIn/NotShowIn lists.
	// Empty means no desktop filtering (everything shown).
	CurrentDesktop []string

	// LaunchCounts maps entry ID to recorded launch count, typically loaded
	// from the persistent cache. Missing IDs count as zero.
	LaunchCounts map[string]int

	// RankByUsage sorts the visible set by descending launch count before
	// name. Off by default: the default order is alphabetical.
	RankByUsage bool
}

// Registry is the deduplicated, ordered set of launchable entries.
type Registry struct {
	visible []Item
	byID    map[string]Item
}

// Build constructs a registry from parsed entries. On ID collision the entry
// from the higher-priority directory (lower SourcePriority) wins and the
// loser is dropped silently. Hidden entries and entries excluded by the
// current desktop never enter the visible set.
func Build(entries []desktop.Entry, opts Options) *Registry {
	byID := make(map[string]Item, len(entries))
	shadowed := 0
	for _, entry := range entries {
		if existing, ok := byID[entry.ID]; ok {
			shadowed++
			if existing.SourcePriority <= entry.SourcePriority {
				continue
			}
		}
		byID[entry.ID] = Item{
			Entry:       entry,
			LaunchCount: opts.LaunchCounts[entry.ID],
		}
	}

	visible := make([]Item, 0, len(byID))
	for _, item := range byID {
		if item.Hidden {
			continue
		}
		if !item.ShownOnDesktop(opts.CurrentDesktop) {
			continue
		}
		visible = append(visible, item)
	}

	sortItems(visible, opts.RankByUsage)

	log.Info(log.CatRegistry, "registry built",
		"entries", len(entries), "unique", len(byID), "shadowed", shadowed, "visible", len(visible))

	return &Registry{visible: visible, byID: byID}
}

// sortItems orders items alphabetically by lowercased display name with ID
// as the final tie-break; usage ranking bubbles frequently launched entries
// to the top first.
func sortItems(items []Item, rankByUsage bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if rankByUsage && items[i].LaunchCount != items[j].LaunchCount {
			return items[i].LaunchCount > items[j].LaunchCount
		}
		ni, nj := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if ni != nj {
			return ni < nj
		}
		return items[i].ID < items[j].ID
	})
}

// VisibleEntries returns the visible set in default order. The slice is
// shared and must be treated as read-only.
func (r *Registry) VisibleEntries() []Item {
	return r.visible
}

// Lookup returns the registry item for an ID, whether visible or not.
func (r *Registry) Lookup(id string) (Item, bool) {
	item, ok := r.byID[id]
	return item, ok
}

// Len returns the number of unique entries, including hidden ones.
func (r *Registry) Len() int {
	return len(r.byID)
}
