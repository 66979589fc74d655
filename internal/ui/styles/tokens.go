// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens, the keys a preset must provide.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"
	TokenSelectionBg        ColorToken = "selection.bg"

	// Status indicators
	TokenStatusError ColorToken = "status.error"
)

// AllTokens returns all valid color tokens for preset validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextPlaceholder,
		TokenBorderDefault,
		TokenBorderFocus,
		TokenSelectionIndicator,
		TokenSelectionBg,
		TokenStatusError,
	}
}
