package render

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/relens/internal/highlight"
	"github.com/zjrosen/relens/internal/markup"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// statusWidth fits ACCEPTED and REJECTED.
const statusWidth = 8

// TerminalView is State rendered as ANSI text, one string per target.
type TerminalView struct {
	Translated string
	Overlay    string
	Summary    string
	Table      string
	Banner     string
}

// Terminal renders s with the styles of its theme. width bounds table rows
// and banner wrapping; zero means unbounded.
func (r *Renderer) Terminal(s State, width int) TerminalView {
	st := r.Styles(s)
	ts := terminalStyles(st)

	v := TerminalView{
		Translated: highlight.Render(s.Translated.Tokens, st),
		Overlay:    markup.ToTerminal(s.Overlay.Markup, ts),
		Summary:    markup.ToTerminal(s.Summary.Markup, ts),
		Table:      terminalTable(s.Table, st, width),
	}
	if s.Banner.Visible {
		v.Banner = markup.ToTerminal(s.Banner.Markup, ts)
		if width > 0 {
			v.Banner = wordwrap.String(v.Banner, width)
		}
	}
	return v
}

func terminalStyles(st styles.Styles) markup.TerminalStyles {
	return markup.TerminalStyles{
		Mark:   st.Mark,
		Strong: st.ErrorPrefix,
		Classes: map[string]lipgloss.Style{
			PlaceholderClass: st.Placeholder,
			"group":          st.Group,
			"class":          st.Class,
			"quant":          st.Quant,
			"alt":            st.Alt,
			"literal":        st.Literal,
		},
	}
}

// terminalTable lays rows out as "line  STATUS" with the line truncated to
// leave room for the status column.
func terminalTable(t Table, st styles.Styles, width int) string {
	if len(t.Rows) == 0 {
		return ""
	}

	lineWidth := 0
	for _, row := range t.Rows {
		lineWidth = max(lineWidth, lipgloss.Width(html.UnescapeString(row.Line)))
	}
	if width > 0 {
		lineWidth = min(lineWidth, max(width-statusWidth-2, 1))
	}

	var b strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := ansi.Truncate(html.UnescapeString(row.Line), lineWidth, "…")
		b.WriteString(st.Primary.Render(line))
		b.WriteString(strings.Repeat(" ", lineWidth-lipgloss.Width(line)+2))
		status := st.Rejected
		if row.Class == ClassOK {
			status = st.Accepted
		}
		b.WriteString(status.Render(row.Status))
	}
	return b.String()
}
