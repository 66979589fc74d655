package launcher

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/fling-dev/fling/internal/config"
	"github.com/fling-dev/fling/internal/controller"
	"github.com/fling-dev/fling/internal/desktop"
	"github.com/fling-dev/fling/internal/registry"
	"github.com/fling-dev/fling/internal/ui/styles"
)

func init() {
	zone.NewGlobal()
}

func items(names ...string) []registry.Item {
	out := make([]registry.Item, len(names))
	for i, name := range names {
		out[i] = registry.Item{Entry: desktop.Entry{ID: name, Name: name, Exec: "/usr/bin/" + name}}
	}
	return out
}

type spawnRecorder struct {
	spawned []string
	err     error
}

func (r *spawnRecorder) spawn(e desktop.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.spawned = append(r.spawned, e.ID)
	return nil
}

func newModel(t *testing.T, rec *spawnRecorder, names ...string) Model {
	t.Helper()
	theme, err := styles.Load("nord")
	require.NoError(t, err)

	ctrl := controller.New(rec.spawn, controller.Options{})
	loaded := items(names...)
	m := New(config.Defaults(), theme, ctrl, func() ([]registry.Item, error) {
		return loaded, nil
	}, nil)

	// Deliver the background load synchronously.
	next, _ := m.Update(entriesLoadedMsg{items: loaded})
	return next.(Model)
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func keyPress(t *testing.T, m Model, keyType tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return next.(Model), cmd
}

func TestLoadPopulatesResults(t *testing.T) {
	m := newModel(t, &spawnRecorder{}, "Files", "Firefox", "Terminal")
	require.Len(t, m.Controller().Results(), 3)
	require.Equal(t, controller.StateFiltering, m.Controller().State())
}

func TestTypingFiltersResults(t *testing.T) {
	m := newModel(t, &spawnRecorder{}, "Files", "Firefox", "Terminal")

	m = typeString(t, m, "fi")
	require.Len(t, m.Controller().Results(), 2)
	require.Equal(t, "fi", m.Controller().Query())

	m = typeString(t, m, "r")
	require.Len(t, m.Controller().Results(), 1)
	sel, _ := m.Controller().Selected()
	require.Equal(t, "Firefox", sel.Name)
}

func TestBackspaceWidensResults(t *testing.T) {
	m := newModel(t, &spawnRecorder{}, "Files", "Firefox")

	m = typeString(t, m, "fir")
	require.Len(t, m.Controller().Results(), 1)

	m, _ = keyPress(t, m, tea.KeyBackspace)
	require.Len(t, m.Controller().Results(), 2)
}

func TestEnterLaunchesAndQuits(t *testing.T) {
	rec := &spawnRecorder{}
	m := newModel(t, rec, "Files", "Firefox")

	m, _ = keyPress(t, m, tea.KeyDown)
	_, cmd := keyPress(t, m, tea.KeyEnter)

	require.NotNil(t, cmd)
	_, quits := cmd().(tea.QuitMsg)
	require.True(t, quits)
	require.Equal(t, []string{"Firefox"}, rec.spawned)
}

func TestEscapeCancels(t *testing.T) {
	rec := &spawnRecorder{}
	m := newModel(t, rec, "Files")

	m, cmd := keyPress(t, m, tea.KeyEscape)
	require.NotNil(t, cmd)
	_, quits := cmd().(tea.QuitMsg)
	require.True(t, quits)
	require.Equal(t, controller.StateDone, m.Controller().State())
	require.Empty(t, rec.spawned)
}

func TestLaunchFailureStaysInteractive(t *testing.T) {
	rec := &spawnRecorder{err: errors.New("exec: no such file")}
	m := newModel(t, rec, "Files")

	m, cmd := keyPress(t, m, tea.KeyEnter)
	require.Nil(t, cmd, "failed launch must not quit")
	require.Equal(t, controller.StateFiltering, m.Controller().State())
	require.Contains(t, m.View(), "no such file")
}

func TestArrowNavigationSaturates(t *testing.T) {
	m := newModel(t, &spawnRecorder{}, "A", "B", "C")

	m, _ = keyPress(t, m, tea.KeyUp)
	require.Equal(t, 0, m.Controller().SelectedIndex())

	for i := 0; i < 5; i++ {
		m, _ = keyPress(t, m, tea.KeyDown)
	}
	require.Equal(t, 2, m.Controller().SelectedIndex())
}

func TestViewShowsEntriesAndSelection(t *testing.T) {
	m := newModel(t, &spawnRecorder{}, "Files", "Firefox")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	m = next.(Model)

	view := m.View()
	require.Contains(t, view, "Files")
	require.Contains(t, view, "Firefox")
	require.Contains(t, view, ">", "selected row carries the indicator")
	require.Contains(t, view, "2 apps")
}

func TestViewNoMatches(t *testing.T) {
	m := newModel(t, &spawnRecorder{}, "Files")
	m = typeString(t, m, "zzz")
	require.Contains(t, m.View(), "no matches")
}

func TestScrollKeepsSelectionVisible(t *testing.T) {
	names := make([]string, 30)
	for i := range names {
		names[i] = string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	m := newModel(t, &spawnRecorder{}, names...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 40})
	m = next.(Model)

	for i := 0; i < 15; i++ {
		m, _ = keyPress(t, m, tea.KeyDown)
	}
	sel := m.Controller().SelectedIndex()
	require.Equal(t, 15, sel)
	require.GreaterOrEqual(t, sel, m.offset)
	require.Less(t, sel, m.offset+m.visibleRows())
}

func TestRefreshReloads(t *testing.T) {
	m := newModel(t, &spawnRecorder{}, "Files")

	m, cmd := keyPress(t, m, tea.KeyCtrlR)
	require.NotNil(t, cmd)
	require.True(t, m.loading)

	msg := cmd()
	loaded, ok := msg.(entriesLoadedMsg)
	require.True(t, ok)
	require.Len(t, loaded.items, 1)
}

func TestLoadFailureQuitsWithError(t *testing.T) {
	theme, err := styles.Load("nord")
	require.NoError(t, err)
	ctrl := controller.New((&spawnRecorder{}).spawn, controller.Options{})
	m := New(config.Defaults(), theme, ctrl, func() ([]registry.Item, error) {
		return nil, errors.New("no search dirs")
	}, nil)

	msg := m.loadCmd()()
	failed, ok := msg.(loadFailedMsg)
	require.True(t, ok)

	next, cmd := m.Update(failed)
	m = next.(Model)
	require.Error(t, m.LoadErr())
	_, quits := cmd().(tea.QuitMsg)
	require.True(t, quits)
}

func TestFullSessionWithTeatest(t *testing.T) {
	rec := &spawnRecorder{}
	m := newModel(t, rec, "Files", "Firefox", "Terminal")

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Firefox"))
	}, teatest.WithDuration(3*time.Second))

	tm.Type("fir")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.Equal(t, controller.StateDone, final.Controller().State())
	require.Equal(t, []string{"Firefox"}, rec.spawned)

	_, _ = io.ReadAll(tm.FinalOutput(t))
}
