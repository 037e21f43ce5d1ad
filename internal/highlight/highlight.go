package highlight

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/relens/internal/ui/styles"
)

// Markup renders tokens as HTML spans classed by category. Plain tokens only
// wrap their alphanumeric units.
func Markup(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Category == CategoryPlain {
			for _, u := range tok.Units {
				if u.Category == CategoryLiteral {
					writeSpan(&b, CategoryLiteral, u.Text)
				} else {
					b.WriteString(u.Text)
				}
			}
			continue
		}
		writeSpan(&b, tok.Category, tok.Text)
	}
	return b.String()
}

func writeSpan(b *strings.Builder, cat Category, text string) {
	b.WriteString(`<span class="`)
	b.WriteString(cat.String())
	b.WriteString(`">`)
	b.WriteString(text)
	b.WriteString(`</span>`)
}

// Render returns the tokens as styled terminal text. Token text is unescaped
// before styling. Tokens are reused as is, so a theme change only needs a new
// call with different styles.
func Render(tokens []Token, st styles.Styles) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Category == CategoryPlain {
			for _, u := range tok.Units {
				b.WriteString(categoryStyle(u.Category, st).Render(html.UnescapeString(u.Text)))
			}
			continue
		}
		b.WriteString(categoryStyle(tok.Category, st).Render(html.UnescapeString(tok.Text)))
	}
	return b.String()
}

// Highlight tokenizes translated and renders it for the terminal.
func Highlight(translated string, st styles.Styles) string {
	if translated == "" {
		return ""
	}
	return Render(Tokenize(translated), st)
}

func categoryStyle(cat Category, st styles.Styles) lipgloss.Style {
	switch cat {
	case CategoryGroup:
		return st.Group
	case CategoryClass:
		return st.Class
	case CategoryQuant:
		return st.Quant
	case CategoryAlt:
		return st.Alt
	case CategoryLiteral:
		return st.Literal
	default:
		return st.Plain
	}
}
