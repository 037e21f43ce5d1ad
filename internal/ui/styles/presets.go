package styles

import (
	"fmt"
	"maps"
	"strings"
)

// Theme is the light/dark presentation preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light" (case-insensitive).
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, true
	case ThemeLight:
		return ThemeLight, true
	default:
		return "", false
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// Preset represents a complete color theme.
type Preset struct {
	Name   string
	Colors map[ColorToken]string
}

// DarkPreset uses Catppuccin Mocha accents.
var DarkPreset = Preset{
	Name: "dark",
	Colors: map[ColorToken]string{
		TokenSyntaxGroup:   "#89B4FA", // blue
		TokenSyntaxClass:   "#94E2D5", // teal
		TokenSyntaxQuant:   "#FAB387", // peach
		TokenSyntaxAlt:     "#F38BA8", // red
		TokenSyntaxLiteral: "#A6E3A1", // green
		TokenSyntaxPlain:   "#CDD6F4", // text

		TokenMarkBg: "#F9E2AF",
		TokenMarkFg: "#1E1E2E",

		TokenTextPrimary:     "#CCCCCC",
		TokenTextMuted:       "#696969",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenStatusAccepted: "#73F59F",
		TokenStatusRejected: "#FF8787",
		TokenStatusError:    "#FF8787",

		TokenButtonText:    "#FFFFFF",
		TokenButtonBg:      "#2D3436",
		TokenButtonFocusBg: "#3498DB",
	},
}

// LightPreset uses Catppuccin Latte accents.
var LightPreset = Preset{
	Name: "light",
	Colors: map[ColorToken]string{
		TokenSyntaxGroup:   "#1E66F5",
		TokenSyntaxClass:   "#179299",
		TokenSyntaxQuant:   "#FE640B",
		TokenSyntaxAlt:     "#D20F39",
		TokenSyntaxLiteral: "#40A02B",
		TokenSyntaxPlain:   "#4C4F69",

		TokenMarkBg: "#DF8E1D",
		TokenMarkFg: "#EFF1F5",

		TokenTextPrimary:     "#333333",
		TokenTextMuted:       "#8C8FA1",
		TokenTextPlaceholder: "#666666",

		TokenBorderDefault: "#9CA0B0",
		TokenBorderFocus:   "#1E66F5",

		TokenStatusAccepted: "#43BF6D",
		TokenStatusRejected: "#FF6B6B",
		TokenStatusError:    "#D20F39",

		TokenButtonText:    "#FFFFFF",
		TokenButtonBg:      "#5C5F77",
		TokenButtonFocusBg: "#1E66F5",
	},
}

// Palette is a resolved color set for one theme.
type Palette struct {
	Theme  Theme
	colors map[ColorToken]string
}

// NewPalette resolves the preset for theme and applies overrides.
// Override keys are color tokens, values are #RGB or #RRGGBB hex colors.
func NewPalette(theme Theme, overrides map[string]string) (Palette, error) {
	base := DarkPreset
	if theme == ThemeLight {
		base = LightPreset
	} else {
		theme = ThemeDark
	}

	colors := maps.Clone(base.Colors)
	for key, value := range overrides {
		token := ColorToken(key)
		if !isValidToken(token) {
			return Palette{}, fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return Palette{}, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}
	return Palette{Theme: theme, colors: colors}, nil
}

// Hex returns the hex value for token.
func (p Palette) Hex(token ColorToken) string {
	return p.colors[token]
}

// ValidateOverrides checks override keys and values without building a palette.
func ValidateOverrides(overrides map[string]string) error {
	_, err := NewPalette(ThemeDark, overrides)
	return err
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	for _, c := range hex {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
