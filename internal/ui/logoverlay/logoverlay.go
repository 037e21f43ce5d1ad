// Package logoverlay shows recent log lines in an overlay while running with
// --debug. Lines arrive as log.LogEvent messages from the log broker.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/ui/overlay"
	"github.com/zjrosen/relens/internal/ui/styles"
)

const (
	maxLines          = 500
	viewportMaxHeight = 20
	viewportMinHeight = 5
	boxMaxWidth       = 140
	boxMinWidth       = 40
)

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	lines    []string
	width    int
	height   int
	styles   styles.Styles
	viewport viewport.Model
}

// New creates a hidden overlay.
func New(st styles.Styles) Model {
	return Model{minLevel: log.LevelDebug, styles: st}
}

// Append records a log line, dropping the oldest beyond the buffer size.
func (m *Model) Append(line string) {
	m.lines = append(m.lines, strings.TrimSuffix(line, "\n"))
	if over := len(m.lines) - maxLines; over > 0 {
		m.lines = append(m.lines[:0:0], m.lines[over:]...)
	}
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// Lines returns the buffered lines.
func (m Model) Lines() []string {
	return m.lines
}

// Update handles keys while visible. Log events are appended at any time.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if ev, ok := msg.(log.LogEvent); ok {
		m.Append(ev.Payload)
		return m, nil
	}
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			m.lines = nil
		case "d":
			m.minLevel = log.LevelDebug
		case "i":
			m.minLevel = log.LevelInfo
		case "w":
			m.minLevel = log.LevelWarn
		case "e":
			m.minLevel = log.LevelError
		case "j", "down":
			m.viewport.ScrollDown(1)
			return m, nil
		case "k", "up":
			m.viewport.ScrollUp(1)
			return m, nil
		case "esc", "ctrl+x":
			m.visible = false
			return m, nil
		default:
			return m, nil
		}
		m.refresh()

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the overlay.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// SetSize updates the screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

// SetStyles switches colors after a theme change.
func (m *Model) SetStyles(st styles.Styles) {
	m.styles = st
	m.refresh()
}

// View renders the box, or nothing when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(m.styles.BorderColor).Render(strings.Repeat("─", width))

	var b strings.Builder
	b.WriteString(m.styles.Primary.Bold(true).PaddingLeft(1).Render("Logs"))
	b.WriteString("\n" + divider + "\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n" + divider + "\n")
	b.WriteString(m.filterHint())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.FocusBorderColor).
		Width(width).
		Render(b.String())
}

// Overlay renders the box centered on bg, or bg when hidden.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	offset := m.viewport.YOffset
	// header, footer and borders take 6 rows
	h := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(m.boxWidth()-2, h)
	m.viewport.SetContent(m.content())
	m.viewport.SetYOffset(offset)
}

func (m Model) content() string {
	width := m.boxWidth() - 2
	var out []string
	for _, line := range m.lines {
		level, ok := levelOf(line)
		if ok && level < m.minLevel {
			continue
		}
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "…")
		}
		out = append(out, m.levelStyle(level, ok).Render(line))
	}
	if len(out) == 0 {
		return m.styles.Placeholder.Render("No logs to display")
	}
	return strings.Join(out, "\n")
}

func levelOf(line string) (log.Level, bool) {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(line, "["+l.String()+"]") {
			return l, true
		}
	}
	return log.LevelDebug, false
}

func (m Model) levelStyle(level log.Level, known bool) lipgloss.Style {
	if !known {
		return m.styles.Primary
	}
	switch level {
	case log.LevelError:
		return m.styles.ErrorText
	case log.LevelWarn:
		return m.styles.Quant
	case log.LevelInfo:
		return m.styles.Primary
	default:
		return m.styles.Muted
	}
}

func (m Model) filterHint() string {
	hints := []string{m.styles.Muted.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if f.level == m.minLevel {
			hints = append(hints, m.styles.Primary.Bold(true).Render(f.label))
		} else {
			hints = append(hints, m.styles.Muted.Render(f.label))
		}
	}
	return strings.Join(hints, "  ")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}
