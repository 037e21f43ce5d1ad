package logoverlay

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/pubsub"
	"github.com/zjrosen/relens/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func newVisible(t *testing.T) Model {
	t.Helper()
	m := New(styles.ForTheme(styles.ThemeDark))
	m.SetSize(100, 40)
	m.Toggle()
	require.True(t, m.Visible())
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Hidden(t *testing.T) {
	m := New(styles.ForTheme(styles.ThemeDark))
	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, "bg", m.Overlay("bg"))
}

func TestToggle(t *testing.T) {
	m := newVisible(t)
	m.Toggle()
	require.False(t, m.Visible())
}

func TestUpdate_AppendsEventsWhileHidden(t *testing.T) {
	m := New(styles.ForTheme(styles.ThemeDark))
	m, _ = m.Update(log.LogEvent{Type: pubsub.LoggedEvent, Payload: "2025-01-01T00:00:00 [INFO] [ui] hello\n"})

	require.Equal(t, []string{"2025-01-01T00:00:00 [INFO] [ui] hello"}, m.Lines())
}

func TestAppend_CapsBuffer(t *testing.T) {
	m := New(styles.ForTheme(styles.ThemeDark))
	for i := range maxLines + 10 {
		m.Append(fmt.Sprintf("line %d", i))
	}
	require.Len(t, m.Lines(), maxLines)
	require.Equal(t, "line 10", m.Lines()[0])
}

func TestView_EmptyBuffer(t *testing.T) {
	m := newVisible(t)
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestFilter_Levels(t *testing.T) {
	m := newVisible(t)
	m.Append("t [DEBUG] [orch] window restarted")
	m.Append("t [INFO] [client] request sent")
	m.Append("t [WARN] [cache] flush failed")
	m.Append("t [ERROR] [client] service unreachable")

	view := ansi.Strip(m.View())
	require.Contains(t, view, "window restarted")

	m, _ = m.Update(key("w"))
	view = ansi.Strip(m.View())
	require.NotContains(t, view, "window restarted")
	require.NotContains(t, view, "request sent")
	require.Contains(t, view, "flush failed")
	require.Contains(t, view, "service unreachable")

	m, _ = m.Update(key("e"))
	view = ansi.Strip(m.View())
	require.NotContains(t, view, "flush failed")
	require.Contains(t, view, "service unreachable")

	m, _ = m.Update(key("d"))
	require.Contains(t, ansi.Strip(m.View()), "window restarted")
}

func TestClear(t *testing.T) {
	m := newVisible(t)
	m.Append("t [INFO] [ui] something")
	m, _ = m.Update(key("c"))

	require.Empty(t, m.Lines())
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestEscapeHides(t *testing.T) {
	m := newVisible(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
}

func TestLongLinesTruncated(t *testing.T) {
	m := newVisible(t)
	m.Append("t [INFO] [ui] " + strings.Repeat("x", 400))

	for _, line := range strings.Split(m.View(), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), m.boxWidth()+2)
	}
}

func TestOverlay_CentersOnBackground(t *testing.T) {
	m := newVisible(t)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 40), "\n")

	out := m.Overlay(bg)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 40)
	require.Contains(t, ansi.Strip(out), "Logs")
}
