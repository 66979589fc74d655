package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fling-dev/fling/internal/desktop"
	"github.com/fling-dev/fling/internal/registry"
)

func item(id, name string, terms ...string) registry.Item {
	return registry.Item{Entry: desktop.Entry{ID: id, Name: name, Keywords: terms}}
}

func names(items []registry.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

var apps = []registry.Item{
	item("files", "Files"),
	item("firefox", "Firefox"),
	item("term", "Terminal"),
}

func TestApplyEmptyQueryIsIdentity(t *testing.T) {
	got := Apply(apps, "")
	require.Equal(t, []string{"Files", "Firefox", "Terminal"}, names(got))
}

func TestApplyCaseInsensitiveSubstring(t *testing.T) {
	got := Apply(apps, "fi")
	require.Equal(t, []string{"Files", "Firefox"}, names(got),
		"equal rank resolves alphabetically")

	got = Apply(apps, "FI")
	require.Equal(t, []string{"Files", "Firefox"}, names(got))
}

func TestApplyNoMatchYieldsEmptyResult(t *testing.T) {
	got := Apply(apps, "zzz")
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestApplyNamePrefixOutranksSubstring(t *testing.T) {
	entries := []registry.Item{
		item("gterm", "GNOME Terminal"),
		item("term", "Terminal"),
	}
	got := Apply(entries, "term")
	require.Equal(t, []string{"Terminal", "GNOME Terminal"}, names(got),
		"prefix match on Terminal beats mid-name match")
}

func TestApplyNameOutranksSearchTerms(t *testing.T) {
	entries := []registry.Item{
		item("chromium", "Chromium", "Web", "Browser"),
		item("browser-cfg", "Browser Settings"),
	}
	got := Apply(entries, "browser")
	require.Equal(t, []string{"Browser Settings", "Chromium"}, names(got))
}

func TestApplyMatchesGenericName(t *testing.T) {
	e := item("firefox", "Firefox")
	e.GenericName = "Web Browser"
	got := Apply([]registry.Item{e, item("files", "Files")}, "web")
	require.Equal(t, []string{"Firefox"}, names(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	entries := []registry.Item{
		item("z", "Zeta"),
		item("a", "Alpha"),
	}
	_ = Apply(entries, "a")
	require.Equal(t, "Zeta", entries[0].Name)
	require.Equal(t, "Alpha", entries[1].Name)
}

func TestApplyDeterministic(t *testing.T) {
	first := Apply(apps, "fi")
	second := Apply(apps, "fi")
	require.Equal(t, first, second)
}
