package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	th, ok := ParseTheme("DARK")
	require.True(t, ok)
	require.Equal(t, ThemeDark, th)

	th, ok = ParseTheme(" light ")
	require.True(t, ok)
	require.Equal(t, ThemeLight, th)

	_, ok = ParseTheme("sepia")
	require.False(t, ok)
}

func TestTheme_Toggle(t *testing.T) {
	require.Equal(t, ThemeLight, ThemeDark.Toggle())
	require.Equal(t, ThemeDark, ThemeLight.Toggle())
	require.Equal(t, ThemeDark, Theme("").Toggle())
	require.True(t, ThemeDark.IsDark())
	require.False(t, ThemeLight.IsDark())
}

func TestPresets_CoverAllTokens(t *testing.T) {
	for _, preset := range []Preset{DarkPreset, LightPreset} {
		for _, tok := range AllTokens {
			hex, ok := preset.Colors[tok]
			require.True(t, ok, "%s preset missing %s", preset.Name, tok)
			require.True(t, isValidHexColor(hex), "%s preset has bad color for %s", preset.Name, tok)
		}
	}
}

func TestNewPalette_Overrides(t *testing.T) {
	p, err := NewPalette(ThemeLight, map[string]string{"syntax.group": "#ABC"})
	require.NoError(t, err)
	require.Equal(t, ThemeLight, p.Theme)
	require.Equal(t, "#ABC", p.Hex(TokenSyntaxGroup))
	require.Equal(t, LightPreset.Colors[TokenSyntaxAlt], p.Hex(TokenSyntaxAlt))

	// The preset itself is not mutated by overrides.
	require.NotEqual(t, "#ABC", LightPreset.Colors[TokenSyntaxGroup])
}

func TestNewPalette_UnknownThemeFallsBackToDark(t *testing.T) {
	p, err := NewPalette(Theme("sepia"), nil)
	require.NoError(t, err)
	require.Equal(t, ThemeDark, p.Theme)
}

func TestValidateOverrides(t *testing.T) {
	require.NoError(t, ValidateOverrides(nil))

	err := ValidateOverrides(map[string]string{"syntax.nope": "#FFFFFF"})
	require.ErrorContains(t, err, "unknown color token")

	err = ValidateOverrides(map[string]string{"mark.bg": "yellow"})
	require.ErrorContains(t, err, "invalid hex color")
}

func TestSet_For(t *testing.T) {
	set, err := NewSet(map[string]string{"mark.bg": "#123456"})
	require.NoError(t, err)
	require.Equal(t, ThemeDark, set.For(ThemeDark).Theme)
	require.Equal(t, ThemeLight, set.For(ThemeLight).Theme)
	require.Equal(t, lipgloss.Color("#123456"), set.For(ThemeLight).Mark.GetBackground())
}

func TestPanel_Dimensions(t *testing.T) {
	st := ForTheme(ThemeDark)

	out := Panel("line one\nline two is much longer than the panel", "Title", 20, 5, true, st)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	for i, line := range lines {
		require.Equal(t, 20, lipgloss.Width(line), "row %d", i)
	}
	require.Contains(t, ansi.Strip(lines[0]), "Title")
	require.Contains(t, ansi.Strip(lines[1]), "line one")
	require.Contains(t, ansi.Strip(lines[2]), "…")
}

func TestPanel_NarrowTitleFallsBackToPlainEdge(t *testing.T) {
	out := Panel("", "Long title", 5, 3, false, ForTheme(ThemeLight))
	top := ansi.Strip(strings.Split(out, "\n")[0])
	require.Equal(t, "╭───╮", top)
}
