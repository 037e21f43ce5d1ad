// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override under theme.colors in their config.
const (
	// Translated pattern syntax
	TokenSyntaxGroup   ColorToken = "syntax.group"
	TokenSyntaxClass   ColorToken = "syntax.class"
	TokenSyntaxQuant   ColorToken = "syntax.quant"
	TokenSyntaxAlt     ColorToken = "syntax.alt"
	TokenSyntaxLiteral ColorToken = "syntax.literal"
	TokenSyntaxPlain   ColorToken = "syntax.plain"

	// Overlay and summary
	TokenMarkBg ColorToken = "mark.bg"
	TokenMarkFg ColorToken = "mark.fg"

	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusAccepted ColorToken = "status.accepted"
	TokenStatusRejected ColorToken = "status.rejected"
	TokenStatusError    ColorToken = "status.error"

	// Buttons
	TokenButtonText    ColorToken = "button.text"
	TokenButtonBg      ColorToken = "button.bg"
	TokenButtonFocusBg ColorToken = "button.focus.bg"
)

// AllTokens lists every overridable token.
var AllTokens = []ColorToken{
	TokenSyntaxGroup, TokenSyntaxClass, TokenSyntaxQuant, TokenSyntaxAlt,
	TokenSyntaxLiteral, TokenSyntaxPlain,
	TokenMarkBg, TokenMarkFg,
	TokenTextPrimary, TokenTextMuted, TokenTextPlaceholder,
	TokenBorderDefault, TokenBorderFocus,
	TokenStatusAccepted, TokenStatusRejected, TokenStatusError,
	TokenButtonText, TokenButtonBg, TokenButtonFocusBg,
}

func isValidToken(t ColorToken) bool {
	for _, known := range AllTokens {
		if known == t {
			return true
		}
	}
	return false
}
