package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Panel renders content inside a rounded border with the title embedded in
// the top edge: ╭─ Title ─────╮. Lines wider than the panel are truncated,
// never wrapped, so line N of content is always row N of the panel.
func Panel(content, title string, width, height int, focused bool, st Styles) string {
	borderColor := st.BorderColor
	if focused {
		borderColor = st.FocusBorderColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := st.Primary.Bold(focused)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	var b strings.Builder
	b.WriteString(topBorder(title, innerWidth, borderStyle, titleStyle))
	b.WriteByte('\n')

	lines := strings.Split(content, "\n")
	for i := 0; i < innerHeight; i++ {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], innerWidth, "…")
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteString(line)
		b.WriteString(borderStyle.Render(borderVertical))
		b.WriteByte('\n')
	}

	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return b.String()
}

// topBorder needs at least "─ " and " ─" around the title; narrower panels
// get a plain edge.
func topBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if title == "" || innerWidth < 5 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	display := ansi.Truncate(title, innerWidth-4, "…")
	fill := innerWidth - 4 - lipgloss.Width(display)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(display) +
		borderStyle.Render(" "+borderHorizontal+strings.Repeat(borderHorizontal, fill)+borderTopRight)
}
