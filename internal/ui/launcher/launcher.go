// Package launcher is the Bubble Tea front end: a filter box over the entry
// list, wired to the selection controller. All launcher semantics live in
// the controller; this package only translates input and renders state.
package launcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/fling-dev/fling/internal/config"
	"github.com/fling-dev/fling/internal/controller"
	"github.com/fling-dev/fling/internal/keys"
	"github.com/fling-dev/fling/internal/log"
	"github.com/fling-dev/fling/internal/pubsub"
	"github.com/fling-dev/fling/internal/registry"
	"github.com/fling-dev/fling/internal/ui/styles"
)

// LoadFunc produces the registry items, typically scan-or-cache. It runs on
// a background tea.Cmd so the UI comes up before the scan finishes.
type LoadFunc func() ([]registry.Item, error)

// entriesLoadedMsg delivers a finished background load.
type entriesLoadedMsg struct {
	items []registry.Item
}

// loadFailedMsg delivers a fatal load error.
type loadFailedMsg struct {
	err error
}

const zoneRowPrefix = "launcher-row:"

func rowZoneID(index int) string {
	return fmt.Sprintf("%s%d", zoneRowPrefix, index)
}

// Model holds the launcher UI state.
type Model struct {
	cfg    config.Config
	theme  styles.Theme
	keymap keys.KeyMap

	input textinput.Model
	ctrl  *controller.Controller
	load  LoadFunc

	// listener receives descriptor-directory change events; nil when
	// watching is disabled.
	listener *pubsub.ContinuousListener[string]

	width   int
	height  int
	offset  int // first visible result row
	loading bool
	loadErr error
}

// New builds the launcher model. changes may be nil when the watcher is off.
func New(cfg config.Config, theme styles.Theme, ctrl *controller.Controller, load LoadFunc, changes *pubsub.Broker[string]) Model {
	input := textinput.New()
	input.Placeholder = cfg.Hint
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.TextStyle = theme.InputText
	input.PlaceholderStyle = theme.InputPlaceholder
	input.Focus()

	m := Model{
		cfg:     cfg,
		theme:   theme,
		keymap:  keys.DefaultKeyMap(),
		input:   input,
		ctrl:    ctrl,
		load:    load,
		loading: true,
	}
	if changes != nil {
		m.listener = pubsub.NewContinuousListener(context.Background(), changes)
	}
	return m
}

// Init starts the cursor blink, the background load, and the change
// listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.loadCmd()}
	if m.listener != nil {
		cmds = append(cmds, m.listener.Listen())
	}
	return tea.Batch(cmds...)
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.load()
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return entriesLoadedMsg{items: items}
	}
}

// LoadErr reports a fatal load failure; the command layer turns it into a
// non-zero exit after the program finishes.
func (m Model) LoadErr() error { return m.loadErr }

// Controller exposes the session state machine for the command layer's exit
// handling.
func (m Model) Controller() *controller.Controller { return m.ctrl }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case entriesLoadedMsg:
		m.loading = false
		m.ctrl.SetItems(msg.items)
		m.ensureVisible()
		return m, nil

	case loadFailedMsg:
		m.loadErr = msg.err
		return m, tea.Quit

	case pubsub.Event[string]:
		log.Info(log.CatUI, "rescan triggered", "dir", msg.Payload)
		cmds := []tea.Cmd{m.loadCmd()}
		if m.listener != nil {
			cmds = append(cmds, m.listener.Listen())
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.Escape):
		m.ctrl.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Launch):
		if err := m.ctrl.Confirm(); err == nil {
			return m, tea.Quit
		}
		// Failure stays interactive; the error renders under the input.
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		m.ctrl.Move(-1)
		m.ensureVisible()
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.ctrl.Move(1)
		m.ensureVisible()
		return m, nil

	case key.Matches(msg, m.keymap.PageUp):
		m.ctrl.Page(-1)
		m.ensureVisible()
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		m.ctrl.Page(1)
		m.ensureVisible()
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		return m, m.loadCmd()
	}

	return m.updateInput(msg)
}

// updateInput forwards a message to the text input and syncs the query.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.ctrl.Query() {
		m.ctrl.SetQuery(m.input.Value())
		m.offset = 0
		m.ensureVisible()
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i := m.offset; i < m.offset+m.visibleRows() && i < len(m.ctrl.Results()); i++ {
		if z := zone.Get(rowZoneID(i)); z != nil && z.InBounds(msg) {
			if m.ctrl.SelectedIndex() == i {
				// Second click on the selected row launches it.
				if err := m.ctrl.Confirm(); err == nil {
					return m, tea.Quit
				}
				return m, nil
			}
			m.ctrl.Select(i)
			return m, nil
		}
	}
	return m, nil
}

// visibleRows is the entry-row window size after config and terminal height
// limits.
func (m Model) visibleRows() int {
	rows := m.cfg.UI.VisibleRows
	// input + error/status + footer + frame take 5 lines
	if m.height > 0 && m.height-5 < rows {
		rows = m.height - 5
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureVisible scrolls the result window so the selection stays on screen.
func (m *Model) ensureVisible() {
	sel := m.ctrl.SelectedIndex()
	if sel < 0 {
		m.offset = 0
		return
	}
	rows := m.visibleRows()
	if sel < m.offset {
		m.offset = sel
	}
	if sel >= m.offset+rows {
		m.offset = sel - rows + 1
	}
	if max := len(m.ctrl.Results()) - rows; m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// contentWidth is the usable row width inside the frame.
func (m Model) contentWidth() int {
	width := m.width
	if m.cfg.Width > 0 && m.cfg.Width < width {
		width = m.cfg.Width
	}
	if width == 0 {
		width = 80
	}
	// frame border and padding
	width -= 4
	if width < 20 {
		width = 20
	}
	return width
}

// View renders the launcher.
func (m Model) View() string {
	width := m.contentWidth()

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if err := m.ctrl.LaunchErr(); err != nil {
		b.WriteString(m.theme.ErrorLine.Render(truncate.StringWithTail(err.Error(), uint(width), "…")))
	}
	b.WriteString("\n")

	results := m.ctrl.Results()
	switch {
	case m.loading && len(results) == 0:
		b.WriteString(m.theme.Footer.Render("scanning applications…"))
		b.WriteString("\n")
	case len(results) == 0:
		b.WriteString(m.theme.Footer.Render("no matches"))
		b.WriteString("\n")
	default:
		rows := m.visibleRows()
		for i := m.offset; i < m.offset+rows && i < len(results); i++ {
			b.WriteString(zone.Mark(rowZoneID(i), m.renderRow(results[i], i == m.ctrl.SelectedIndex(), width)))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.theme.Footer.Render(m.footer(len(results))))

	view := m.theme.Frame.Width(width).Render(b.String())
	if m.width > 0 {
		view = lipgloss.Place(m.width, lipgloss.Height(view), lipgloss.Center, lipgloss.Top, view)
	}
	return zone.Scan(view)
}

// renderRow draws one entry line: indicator, name, dimmed generic name.
func (m Model) renderRow(item registry.Item, selected bool, width int) string {
	indicator := "  "
	if selected {
		indicator = m.theme.Indicator.Render("> ")
	}

	name := item.Name
	line := name
	if item.GenericName != "" {
		line += "  " + item.GenericName
	}
	line = truncate.StringWithTail(line, uint(width-2), "…")

	// Re-split styled segments after truncation.
	styledName := name
	rest := ""
	if runewidth.StringWidth(line) > runewidth.StringWidth(name) {
		rest = line[len(name):]
	} else {
		styledName = line
	}

	row := indicator
	if selected {
		row += m.theme.RowSelected.Render(styledName) + m.theme.GenericName.Render(rest)
	} else {
		row += m.theme.Row.Render(styledName) + m.theme.GenericName.Render(rest)
	}
	return row
}

func (m Model) footer(resultCount int) string {
	if m.loading {
		return "rescanning…"
	}
	return fmt.Sprintf("%d apps · enter launch · esc cancel", resultCount)
}
