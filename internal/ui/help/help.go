// Package help contains the help overlay component. The text is markdown
// rendered with glamour in the active theme.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/relens/internal/keys"
	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/ui/overlay"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// noMarginStyle removes glamour's document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Model holds the help view state.
type Model struct {
	keys     keys.KeyMap
	theme    styles.Theme
	width    int
	height   int
	rendered string
}

// New creates a help view.
func New(theme styles.Theme) Model {
	m := Model{keys: keys.DefaultKeyMap(), theme: theme}
	return m.render()
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	if m.width == width && m.height == height {
		return m
	}
	m.width = width
	m.height = height
	return m.render()
}

// SetTheme switches the markdown style.
func (m Model) SetTheme(t styles.Theme) Model {
	if m.theme == t {
		return m
	}
	m.theme = t
	return m.render()
}

// Markdown returns the help source.
func (m Model) Markdown() string {
	var b strings.Builder
	b.WriteString("# relens\n\n")
	b.WriteString("Type a pattern, optional constraints and sample text. ")
	b.WriteString("The translation runs shortly after you stop typing.\n\n")

	section := func(title string, bindings ...key.Binding) {
		fmt.Fprintf(&b, "## %s\n\n| key | action |\n|---|---|\n", title)
		for _, k := range bindings {
			h := k.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	section("Inputs", m.keys.NextInput, m.keys.PrevInput)
	section("Actions", m.keys.Run, m.keys.Clear, m.keys.Copy, m.keys.Theme)
	section("Results", m.keys.ScrollSummaryUp, m.keys.ScrollSummaryDown)
	section("General", m.keys.Help, m.keys.Escape, m.keys.Quit)

	b.WriteString("## Pattern colors\n\n")
	b.WriteString("- **group** `(` `(?:` `)`\n")
	b.WriteString("- **class** `[a-z]`\n")
	b.WriteString("- **quantifier** `*` `+` `?` `{2,3}`\n")
	b.WriteString("- **alternation** `|`\n")
	b.WriteString("- **literal** letters, digits and `\\` escapes\n")
	return b.String()
}

func (m Model) render() Model {
	md := m.Markdown()
	wrap := m.boxWidth() - 4
	style := "dark"
	if m.theme == styles.ThemeLight {
		style = "light"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			m.rendered = strings.Trim(out, "\n")
			return m
		}
	}
	log.ErrorErr(log.CatUI, "Failed to render help", err)
	m.rendered = md
	return m
}

func (m Model) boxWidth() int {
	w := 64
	if m.width > 0 && m.width-4 < w {
		w = m.width - 4
	}
	return max(w, 20)
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	st := styles.ForTheme(m.theme)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(st.FocusBorderColor).
		Padding(0, 1).
		Render(m.rendered + "\n\n" + st.Muted.Render("esc or f1 to close"))

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}
