package styles

import "github.com/charmbracelet/lipgloss"

// Styles is the full set of Lip Gloss styles for one palette.
// It is a plain value so it can be handed to renderers instead of being read
// from package globals.
type Styles struct {
	Theme Theme

	// Token categories of the translated pattern
	Group   lipgloss.Style
	Class   lipgloss.Style
	Quant   lipgloss.Style
	Alt     lipgloss.Style
	Literal lipgloss.Style
	Plain   lipgloss.Style

	// Highlight marker in the overlay and summary
	Mark lipgloss.Style

	// Acceptance table status cells
	Accepted lipgloss.Style
	Rejected lipgloss.Style

	// Error banner
	ErrorPrefix lipgloss.Style
	ErrorText   lipgloss.Style

	Primary     lipgloss.Style
	Muted       lipgloss.Style
	Placeholder lipgloss.Style

	BorderColor      lipgloss.Color
	FocusBorderColor lipgloss.Color

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
}

// New builds the styles for a palette.
func New(p Palette) Styles {
	c := func(t ColorToken) lipgloss.Color { return lipgloss.Color(p.Hex(t)) }

	button := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(c(TokenButtonText))

	return Styles{
		Theme: p.Theme,

		Group:   lipgloss.NewStyle().Foreground(c(TokenSyntaxGroup)).Bold(true),
		Class:   lipgloss.NewStyle().Foreground(c(TokenSyntaxClass)),
		Quant:   lipgloss.NewStyle().Foreground(c(TokenSyntaxQuant)).Bold(true),
		Alt:     lipgloss.NewStyle().Foreground(c(TokenSyntaxAlt)).Bold(true),
		Literal: lipgloss.NewStyle().Foreground(c(TokenSyntaxLiteral)),
		Plain:   lipgloss.NewStyle().Foreground(c(TokenSyntaxPlain)),

		Mark: lipgloss.NewStyle().Background(c(TokenMarkBg)).Foreground(c(TokenMarkFg)),

		Accepted: lipgloss.NewStyle().Foreground(c(TokenStatusAccepted)).Bold(true),
		Rejected: lipgloss.NewStyle().Foreground(c(TokenStatusRejected)).Bold(true),

		ErrorPrefix: lipgloss.NewStyle().Foreground(c(TokenStatusError)).Bold(true),
		ErrorText:   lipgloss.NewStyle().Foreground(c(TokenStatusError)),

		Primary:     lipgloss.NewStyle().Foreground(c(TokenTextPrimary)),
		Muted:       lipgloss.NewStyle().Foreground(c(TokenTextMuted)),
		Placeholder: lipgloss.NewStyle().Foreground(c(TokenTextPlaceholder)).Italic(true),

		BorderColor:      c(TokenBorderDefault),
		FocusBorderColor: c(TokenBorderFocus),

		Button:        button.Background(c(TokenButtonBg)),
		ButtonFocused: button.Background(c(TokenButtonFocusBg)).Underline(true),
	}
}

// ForTheme builds styles for a theme without overrides.
func ForTheme(t Theme) Styles {
	p, _ := NewPalette(t, nil)
	return New(p)
}

// Set holds the styles of both themes so a toggle is a lookup, not a rebuild.
type Set struct {
	dark  Styles
	light Styles
}

// NewSet resolves both palettes with the same overrides.
func NewSet(overrides map[string]string) (Set, error) {
	dark, err := NewPalette(ThemeDark, overrides)
	if err != nil {
		return Set{}, err
	}
	light, err := NewPalette(ThemeLight, overrides)
	if err != nil {
		return Set{}, err
	}
	return Set{dark: New(dark), light: New(light)}, nil
}

// DefaultSet returns both themes without overrides.
func DefaultSet() Set {
	return Set{dark: ForTheme(ThemeDark), light: ForTheme(ThemeLight)}
}

// For returns the styles of theme t.
func (s Set) For(t Theme) Styles {
	if t == ThemeLight {
		return s.light
	}
	return s.dark
}
