package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a preset compiled into ready-to-use Lip Gloss styles.
type Theme struct {
	// Filter box
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// Entry rows
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	GenericName  lipgloss.Style
	Indicator    lipgloss.Style

	// Chrome
	Frame     lipgloss.Style
	Footer    lipgloss.Style
	ErrorLine lipgloss.Style
}

// Load compiles a named preset into a Theme. Unknown names list the valid
// presets in the error.
func Load(name string) (Theme, error) {
	preset, ok := Presets[name]
	if !ok {
		names := make([]string, 0, len(Presets))
		for n := range Presets {
			names = append(names, n)
		}
		sort.Strings(names)
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
	}
	return fromPreset(preset), nil
}

func fromPreset(p Preset) Theme {
	color := func(token ColorToken) lipgloss.Color {
		return lipgloss.Color(p.Colors[token])
	}

	return Theme{
		InputPrompt:      lipgloss.NewStyle().Bold(true).Foreground(color(TokenBorderFocus)),
		InputText:        lipgloss.NewStyle().Foreground(color(TokenTextPrimary)),
		InputPlaceholder: lipgloss.NewStyle().Foreground(color(TokenTextPlaceholder)),

		Row: lipgloss.NewStyle().Foreground(color(TokenTextPrimary)),
		RowSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(TokenTextPrimary)).
			Background(color(TokenSelectionBg)),
		GenericName: lipgloss.NewStyle().Foreground(color(TokenTextMuted)),
		Indicator:   lipgloss.NewStyle().Bold(true).Foreground(color(TokenSelectionIndicator)),

		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(TokenBorderDefault)).
			Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(color(TokenTextMuted)),
		ErrorLine: lipgloss.NewStyle().Foreground(color(TokenStatusError)),
	}
}
