package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/relens/internal/orchestrator"
	"github.com/zjrosen/relens/internal/prefs"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// Theme button glyphs show the theme a click switches to.
const (
	iconToLight = "☀️"
	iconToDark  = "🌙"
)

// Fixed rows: pattern and translated panels (3 each) and the footer.
const fixedRows = 7

// layout holds panel sizes including borders.
type layout struct {
	left, right           int
	middle, text, summary int
	bannerRows            int
}

// refresh re-renders the result targets and resizes every pane.
func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	right := m.width - m.width/2
	m.view = m.renderer.Terminal(m.state, max(right-2, 1))
	l := m.layout()

	m.input(prefs.FocusPattern).SetSize(max(m.width-2, 1), 1)
	m.input(prefs.FocusConstraints).SetSize(max(l.left-2, 1), max(l.middle-2, 1))
	m.input(prefs.FocusText).SetSize(max(l.left-2, 1), max(l.text-2, 1))

	m.overlay.SetSize(max(l.right-2, 1), max(l.text-2, 1))
	m.overlay.SetContent(m.view.Overlay)

	m.summary.Width = max(m.width-2, 1)
	m.summary.Height = max(l.summary-2, 1)
	m.summary.SetContent(m.view.Summary)

	m.syncOverlay()
}

func (m *Model) syncOverlay() {
	top, left := m.input(prefs.FocusText).ScrollOffset()
	m.overlay.SetScrollOffset(top, left)
}

func (m Model) layout() layout {
	l := layout{left: m.width / 2}
	l.right = m.width - l.left
	if m.view.Banner != "" {
		l.bannerRows = lipgloss.Height(m.view.Banner)
	}

	rest := m.height - fixedRows - l.bannerRows
	l.summary = max(rest/4, 3)
	l.middle = max(rest/4, 3)
	l.text = max(rest-l.summary-l.middle, 3)
	return l
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	st := m.styles()
	l := m.layout()

	translated := m.view.Translated
	if translated == "" {
		translated = st.Placeholder.Render("Translated pattern appears here")
	}

	rows := []string{
		m.inputPanel(prefs.FocusPattern, "Pattern", m.width, 3, st),
		styles.Panel(translated, "Translated", m.width, 3, false, st),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.inputPanel(prefs.FocusConstraints, "Constraints", l.left, l.middle, st),
			styles.Panel(m.view.Table, "Acceptance", l.right, l.middle, false, st),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.inputPanel(prefs.FocusText, "Text", l.left, l.text, st),
			styles.Panel(m.overlay.View(), "Highlights", l.right, l.text, false, st),
		),
		zone.Mark(zoneSummary, styles.Panel(m.summary.View(), "Matches", m.width, l.summary, false, st)),
	}
	if m.view.Banner != "" {
		rows = append(rows, m.view.Banner)
	}
	rows = append(rows, m.footer(st))

	view := strings.Join(rows, "\n")
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.logs.Overlay(view)
	return zone.Scan(view)
}

func (m Model) inputPanel(f prefs.Focus, title string, width, height int, st styles.Styles) string {
	in := m.inputs[inputIndex(f)]
	return zone.Mark(zoneInput+string(f), styles.Panel(in.View(), title, width, height, in.Focused(), st))
}

// footer renders the buttons on the left and the status on the right.
func (m Model) footer(st styles.Styles) string {
	themeIcon := iconToDark
	if m.state.Theme.IsDark() {
		themeIcon = iconToLight
	}

	buttons := strings.Join([]string{
		zone.Mark(zoneRun, st.ButtonFocused.Render("Run")),
		zone.Mark(zoneClear, st.Button.Render("Clear")),
		zone.Mark(zoneCopy, st.Button.Render(m.feedback.Icon()+" Copy")),
		zone.Mark(zoneTheme, st.Button.Render(themeIcon)),
	}, " ")

	status := st.Muted.Render(m.status() + "  f1 help")
	gap := m.width - lipgloss.Width(buttons) - lipgloss.Width(status)
	if gap < 1 {
		return buttons
	}
	return buttons + strings.Repeat(" ", gap) + status
}

// status describes the orchestrator: the live state, or the outcome of the
// last applied response once nothing is pending.
func (m Model) status() string {
	state := m.orch.State()
	switch state {
	case orchestrator.Idle:
		return m.orch.Outcome().String()
	case orchestrator.InFlight:
		if n := m.orch.InFlight(); n > 1 {
			return fmt.Sprintf("%s (%d)", state, n)
		}
	}
	return state.String()
}
