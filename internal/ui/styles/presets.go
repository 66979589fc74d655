package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"nord":             NordPreset,
	"default":          DefaultPreset,
	"dracula":          DraculaPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
}

// NordPreset is the arctic, north-bluish palette and the shipped default.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:        "#ECEFF4", // snow storm 6
		TokenTextSecondary:      "#D8DEE9", // snow storm 4
		TokenTextMuted:          "#4C566A", // polar night 3
		TokenTextPlaceholder:    "#616E88",
		TokenBorderDefault:      "#4C566A",
		TokenBorderFocus:        "#88C0D0", // frost 8
		TokenSelectionIndicator: "#88C0D0",
		TokenSelectionBg:        "#3B4252", // polar night 1
		TokenStatusError:        "#BF616A", // aurora red
	},
}

// DefaultPreset is a plain grayscale theme for terminals with odd palettes.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Plain grayscale theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:        "#CCCCCC",
		TokenTextSecondary:      "#999999",
		TokenTextMuted:          "#696969",
		TokenTextPlaceholder:    "#777777",
		TokenBorderDefault:      "#696969",
		TokenBorderFocus:        "#FFFFFF",
		TokenSelectionIndicator: "#FFFFFF",
		TokenSelectionBg:        "#333333",
		TokenStatusError:        "#FF8787",
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:        "#F8F8F2", // foreground
		TokenTextSecondary:      "#BD93F9", // purple
		TokenTextMuted:          "#6272A4", // comment
		TokenTextPlaceholder:    "#6272A4",
		TokenBorderDefault:      "#44475A", // current line
		TokenBorderFocus:        "#8BE9FD", // cyan
		TokenSelectionIndicator: "#50FA7B", // green
		TokenSelectionBg:        "#44475A",
		TokenStatusError:        "#FF5555", // red
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:        "#CDD6F4", // text
		TokenTextSecondary:      "#BAC2DE", // subtext1
		TokenTextMuted:          "#6C7086", // overlay0
		TokenTextPlaceholder:    "#585B70", // surface2
		TokenBorderDefault:      "#45475A", // surface1
		TokenBorderFocus:        "#89B4FA", // blue
		TokenSelectionIndicator: "#A6E3A1", // green
		TokenSelectionBg:        "#313244", // surface0
		TokenStatusError:        "#F38BA8", // red
	},
}
