package desktop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDescriptor(t *testing.T, dir, id, body string) string {
	t.Helper()
	path := filepath.Join(dir, id+".desktop")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestScanFindsDescriptorsInPriorityOrder(t *testing.T) {
	userDir := t.TempDir()
	systemDir := t.TempDir()
	writeDescriptor(t, userDir, "editor", "[Desktop Entry]\nName=Editor\nExec=editor\n")
	writeDescriptor(t, systemDir, "browser", "[Desktop Entry]\nName=Browser\nExec=browser\n")

	candidates := Scan([]string{userDir, systemDir})
	require.Len(t, candidates, 2)
	require.Equal(t, 0, candidates[0].Priority)
	require.Equal(t, filepath.Join(userDir, "editor.desktop"), candidates[0].Path)
	require.Equal(t, 1, candidates[1].Priority)
}

func TestScanSkipsMissingDirectories(t *testing.T) {
	existing := t.TempDir()
	writeDescriptor(t, existing, "app", "[Desktop Entry]\nName=App\nExec=app\n")

	candidates := Scan([]string{"/nonexistent/applications", existing})
	require.Len(t, candidates, 1)
	require.Equal(t, 1, candidates[0].Priority, "priority reflects position in the dir list, not existence")
}

func TestScanIgnoresNonDescriptorFiles(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "app", "[Desktop Entry]\nName=App\nExec=app\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a descriptor"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.desktop"), 0o755))

	candidates := Scan([]string{dir})
	require.Len(t, candidates, 1)
}

func TestScanFollowsSymlinkedFiles(t *testing.T) {
	srcDir := t.TempDir()
	dir := t.TempDir()
	target := writeDescriptor(t, srcDir, "linked", "[Desktop Entry]\nName=Linked\nExec=linked\n")
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "linked.desktop")))

	candidates := Scan([]string{dir})
	require.Len(t, candidates, 1)
}

func TestDirStates(t *testing.T) {
	dir := t.TempDir()
	states := DirStates([]string{dir, "/nonexistent/applications"})
	require.Len(t, states, 2)
	require.True(t, states[0].Exists)
	require.False(t, states[0].ModTime.IsZero())
	require.False(t, states[1].Exists)
	require.True(t, states[1].ModTime.IsZero())
}

func TestLoadAllDropsRejectedDescriptors(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "good", "[Desktop Entry]\nName=Good\nExec=good\n")
	writeDescriptor(t, dir, "bad", "[Desktop Entry]\nName=Bad\n") // no Exec
	writeDescriptor(t, dir, "garbage", "\x00\x01 not a descriptor at all")

	entries := LoadAll([]string{dir})
	require.Len(t, entries, 1)
	require.Equal(t, "good", entries[0].ID)
	require.Equal(t, dir+"/good.desktop", entries[0].SourceFile)
}

func TestDataDirsHonorsEnvironment(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/home/u/.local/share")
	t.Setenv("XDG_DATA_DIRS", "/usr/local/share:/usr/share:/usr/share")

	dirs := DataDirs()
	require.Equal(t, []string{
		"/home/u/.local/share/applications",
		"/usr/local/share/applications",
		"/usr/share/applications",
	}, dirs, "user dir first, duplicates removed")
}

func TestDataDirsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/home/u/.local/share")
	t.Setenv("XDG_DATA_DIRS", "")

	dirs := DataDirs()
	require.Contains(t, dirs, "/usr/local/share/applications")
	require.Contains(t, dirs, "/usr/share/applications")
}

func TestCurrentDesktop(t *testing.T) {
	t.Setenv("XDG_CURRENT_DESKTOP", "ubuntu:GNOME")
	require.Equal(t, []string{"ubuntu", "GNOME"}, CurrentDesktop())

	t.Setenv("XDG_CURRENT_DESKTOP", "")
	require.Nil(t, CurrentDesktop())
}

func TestLocales(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "de_DE.UTF-8")
	t.Setenv("LANG", "en_US.UTF-8")
	require.Equal(t, []string{"de_DE", "de"}, Locales())

	t.Setenv("LC_MESSAGES", "")
	require.Equal(t, []string{"en_US", "en"}, Locales())

	t.Setenv("LANG", "C")
	require.Nil(t, Locales())
}
