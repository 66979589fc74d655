package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresetsProvideAllTokens(t *testing.T) {
	for name, preset := range Presets {
		for _, token := range AllTokens() {
			value, ok := preset.Colors[token]
			require.True(t, ok, "preset %s missing token %s", name, token)
			require.Regexp(t, `^#[0-9A-Fa-f]{6}$`, value,
				"preset %s token %s is not a hex color", name, token)
		}
	}
}

func TestLoadKnownPresets(t *testing.T) {
	for name := range Presets {
		_, err := Load(name)
		require.NoError(t, err, "preset %s should load", name)
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	_, err := Load("solarized")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nord", "error should list available presets")
}

func TestNordIsDefaultShippedPreset(t *testing.T) {
	require.Contains(t, Presets, "nord")
	require.Equal(t, "nord", NordPreset.Name)
}
