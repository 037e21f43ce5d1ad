package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

// TerminalStyles maps markup elements to terminal styles.
type TerminalStyles struct {
	// Mark styles text inside <mark> elements.
	Mark lipgloss.Style
	// Strong styles text inside <strong> elements.
	Strong lipgloss.Style
	// Classes styles text inside <span class="..."> by class name.
	Classes map[string]lipgloss.Style
}

// ToTerminal converts a markup fragment into styled terminal text.
// Entities are decoded, <br> becomes a newline, unknown elements are dropped
// but their text is kept. A tag left open at the end of input is discarded
// the way a browser would discard it.
func ToTerminal(fragment string, styles TerminalStyles) string {
	if fragment == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var (
		out   strings.Builder
		stack []styledElem
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return out.String()

		case html.TextToken:
			text := string(z.Text())
			if len(stack) == 0 || stack[len(stack)-1].plain {
				out.WriteString(text)
				continue
			}
			writeStyled(&out, text, stack[len(stack)-1].style)

		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				out.WriteByte('\n')
			}

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag == "br" {
				out.WriteByte('\n')
				continue
			}
			elem := styledElem{tag: tag, plain: true}
			if len(stack) > 0 {
				elem.style, elem.plain = stack[len(stack)-1].style, stack[len(stack)-1].plain
			}
			switch tag {
			case "mark":
				elem.style, elem.plain = styles.Mark, false
			case "strong":
				elem.style, elem.plain = styles.Strong, false
			case "span":
				if hasAttr {
					if st, ok := styles.Classes[classAttr(z)]; ok {
						elem.style, elem.plain = st, false
					}
				}
			}
			stack = append(stack, elem)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == tag {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

type styledElem struct {
	tag   string
	style lipgloss.Style
	plain bool
}

func classAttr(z *html.Tokenizer) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			return strings.TrimSpace(string(val))
		}
		if !more {
			return ""
		}
	}
}

// writeStyled renders each line separately; lipgloss pads multi-line input
// to a common width, which would shift the overlay.
func writeStyled(out *strings.Builder, text string, style lipgloss.Style) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}
		if line != "" {
			out.WriteString(style.Render(line))
		}
	}
}
