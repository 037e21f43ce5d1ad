// Package editor provides the grapheme-aware text inputs. A multi-line editor
// scrolls in both directions instead of wrapping so its offsets can drive a
// line-for-line overlay.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/relens/internal/keys"
)

// ANSI codes for cursor - only toggle reverse, don't reset other styles
const (
	cursorOn  = "\x1b[7m"  // reverse video on
	cursorOff = "\x1b[27m" // reverse video off (not full reset)
)

// Model is a text input.
type Model struct {
	lines     []string
	row       int // cursor line
	col       int // cursor grapheme index within the line
	top       int // first visible line
	left      int // first visible display column
	width     int
	height    int
	focused   bool
	multiline bool

	placeholder      string
	placeholderStyle lipgloss.Style
}

// New creates an input. Single-line inputs drop newlines from pasted text.
func New(multiline bool) Model {
	height := 1
	if multiline {
		height = 3
	}
	return Model{
		lines:            []string{""},
		width:            40,
		height:           height,
		multiline:        multiline,
		placeholderStyle: lipgloss.NewStyle().Faint(true),
	}
}

// Value returns the current text value.
func (m Model) Value() string {
	return strings.Join(m.lines, "\n")
}

// SetValue replaces the text and moves the cursor to the end.
func (m *Model) SetValue(v string) {
	v = strings.ReplaceAll(v, "\r\n", "\n")
	if !m.multiline {
		v = strings.ReplaceAll(v, "\n", " ")
	}
	m.lines = strings.Split(v, "\n")
	m.row = len(m.lines) - 1
	m.col = GraphemeCount(m.lines[m.row])
	m.follow()
}

// Cursor returns the cursor line and grapheme column.
func (m Model) Cursor() (row, col int) {
	return m.row, m.col
}

// LineCount returns the number of lines.
func (m Model) LineCount() int {
	return len(m.lines)
}

// Focused returns whether the input is focused.
func (m Model) Focused() bool {
	return m.focused
}

// Focus focuses the input.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus from the input.
func (m *Model) Blur() {
	m.focused = false
}

// SetPlaceholder sets the placeholder text.
func (m *Model) SetPlaceholder(p string) {
	m.placeholder = p
}

// SetPlaceholderStyle sets the style the placeholder is drawn with.
func (m *Model) SetPlaceholderStyle(s lipgloss.Style) {
	m.placeholderStyle = s
}

// SetSize sets the visible area. Single-line inputs are always one line high.
func (m *Model) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 || !m.multiline {
		height = 1
	}
	m.width = width
	m.height = height
	m.clampScroll()
}

// Width returns the display width.
func (m Model) Width() int {
	return m.width
}

// Height returns the visible line count.
func (m Model) Height() int {
	return m.height
}

// ScrollOffset returns the first visible line and display column.
func (m Model) ScrollOffset() (top, left int) {
	return m.top, m.left
}

// ScrollBy moves the viewport by delta lines without moving the cursor
// (mouse wheel).
func (m *Model) ScrollBy(delta int) {
	m.top += delta
	maxTop := len(m.lines) - m.height
	if m.top > maxTop {
		m.top = maxTop
	}
	if m.top < 0 {
		m.top = 0
	}
}

// Update handles key and paste messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ScrollBy(-1)
		case tea.MouseButtonWheelDown:
			m.ScrollBy(1)
		}
		return m, nil

	case tea.KeyMsg:
		m.handleKey(msg)
		m.follow()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	k := keys.Editor
	switch {
	case key.Matches(msg, k.Left):
		if m.col > 0 {
			m.col--
		} else if m.row > 0 {
			m.row--
			m.col = GraphemeCount(m.lines[m.row])
		}
	case key.Matches(msg, k.Right):
		if m.col < GraphemeCount(m.lines[m.row]) {
			m.col++
		} else if m.row < len(m.lines)-1 {
			m.row++
			m.col = 0
		}
	case key.Matches(msg, k.Up):
		m.moveRows(-1)
	case key.Matches(msg, k.Down):
		m.moveRows(1)
	case key.Matches(msg, k.PageUp):
		m.moveRows(-m.height)
	case key.Matches(msg, k.PageDown):
		m.moveRows(m.height)
	case key.Matches(msg, k.LineStart):
		m.col = 0
	case key.Matches(msg, k.LineEnd):
		m.col = GraphemeCount(m.lines[m.row])
	case key.Matches(msg, k.Newline):
		if m.multiline {
			m.insert("\n")
		}
	case key.Matches(msg, k.Backspace):
		m.backspace()
	case key.Matches(msg, k.Delete):
		m.deleteForward()
	case key.Matches(msg, k.DeleteWordBackward):
		m.deleteWordBackward()
	case key.Matches(msg, k.ClearLine):
		line := m.lines[m.row]
		m.lines[m.row] = line[:GraphemeToByteOffset(line, m.col)]
	case msg.Type == tea.KeySpace:
		m.insert(" ")
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.insert(string(msg.Runes))
	}
}

func (m *Model) moveRows(delta int) {
	m.row += delta
	if m.row < 0 {
		m.row = 0
	}
	if m.row > len(m.lines)-1 {
		m.row = len(m.lines) - 1
	}
	if n := GraphemeCount(m.lines[m.row]); m.col > n {
		m.col = n
	}
}

// insert puts text at the cursor. Pasted text may contain newlines.
func (m *Model) insert(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if !m.multiline {
		text = strings.ReplaceAll(text, "\n", " ")
	}

	line := m.lines[m.row]
	at := GraphemeToByteOffset(line, m.col)
	head, tail := line[:at], line[at:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		// Count graphemes of the joined line: combining marks can merge with
		// the grapheme before the cursor.
		before := GraphemeCount(head + text)
		m.lines[m.row] = head + text + tail
		m.col = before
		return
	}

	newLines := make([]string, 0, len(m.lines)+len(parts)-1)
	newLines = append(newLines, m.lines[:m.row]...)
	newLines = append(newLines, head+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	last := parts[len(parts)-1]
	newLines = append(newLines, last+tail)
	newLines = append(newLines, m.lines[m.row+1:]...)

	m.lines = newLines
	m.row += len(parts) - 1
	m.col = GraphemeCount(last)
}

func (m *Model) backspace() {
	if m.col == 0 {
		if m.row == 0 {
			return
		}
		prev := m.lines[m.row-1]
		m.col = GraphemeCount(prev)
		m.lines[m.row-1] = prev + m.lines[m.row]
		m.lines = append(m.lines[:m.row], m.lines[m.row+1:]...)
		m.row--
		return
	}
	line := m.lines[m.row]
	from := GraphemeToByteOffset(line, m.col-1)
	to := GraphemeToByteOffset(line, m.col)
	m.lines[m.row] = line[:from] + line[to:]
	m.col--
}

func (m *Model) deleteForward() {
	line := m.lines[m.row]
	if m.col >= GraphemeCount(line) {
		if m.row < len(m.lines)-1 {
			m.lines[m.row] = line + m.lines[m.row+1]
			m.lines = append(m.lines[:m.row+1], m.lines[m.row+2:]...)
		}
		return
	}
	from := GraphemeToByteOffset(line, m.col)
	to := GraphemeToByteOffset(line, m.col+1)
	m.lines[m.row] = line[:from] + line[to:]
}

// deleteWordBackward removes trailing spaces, then the word or punctuation
// run before the cursor.
func (m *Model) deleteWordBackward() {
	if m.col == 0 {
		m.backspace()
		return
	}
	clusters := Graphemes(m.lines[m.row])
	start := m.col
	for start > 0 && isSpaceGrapheme(clusters[start-1]) {
		start--
	}
	if start > 0 {
		word := isWordGrapheme(clusters[start-1])
		for start > 0 && !isSpaceGrapheme(clusters[start-1]) && isWordGrapheme(clusters[start-1]) == word {
			start--
		}
	}
	m.lines[m.row] = strings.Join(clusters[:start], "") + strings.Join(clusters[m.col:], "")
	m.col = start
}

// cursorX returns the display column of the cursor.
func (m Model) cursorX() int {
	line := m.lines[m.row]
	x := 0
	for i, c := range Graphemes(line) {
		if i == m.col {
			break
		}
		x += graphemeWidth(c)
	}
	return x
}

// follow scrolls so the cursor is visible.
func (m *Model) follow() {
	if m.row < m.top {
		m.top = m.row
	}
	if m.row >= m.top+m.height {
		m.top = m.row - m.height + 1
	}
	x := m.cursorX()
	if x < m.left {
		m.left = x
	}
	// Keep one cell for the cursor past the last grapheme.
	if x >= m.left+m.width {
		m.left = x - m.width + 1
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.row >= len(m.lines) {
		m.row = len(m.lines) - 1
	}
	maxTop := len(m.lines) - m.height
	if maxTop < 0 {
		maxTop = 0
	}
	if m.top > maxTop {
		m.top = maxTop
	}
	if m.top < 0 {
		m.top = 0
	}
	if m.left < 0 {
		m.left = 0
	}
}

// View renders the visible window.
func (m Model) View() string {
	if m.Value() == "" && m.placeholder != "" {
		ph := m.placeholder
		if m.focused {
			clusters := Graphemes(ph)
			ph = cursorOn + clusters[0] + cursorOff + strings.Join(clusters[1:], "")
		}
		out := []string{m.placeholderStyle.Render(ph)}
		for i := 1; i < m.height; i++ {
			out = append(out, "")
		}
		return strings.Join(out, "\n")
	}

	out := make([]string, 0, m.height)
	for i := m.top; i < m.top+m.height; i++ {
		if i >= len(m.lines) {
			out = append(out, "")
			continue
		}
		cursor := -1
		if m.focused && i == m.row {
			cursor = m.col
		}
		out = append(out, m.renderLine(m.lines[i], cursor))
	}
	return strings.Join(out, "\n")
}

// renderLine cuts the line to [left, left+width) display columns and draws
// the cursor at grapheme index cursor (-1 for none).
func (m Model) renderLine(line string, cursor int) string {
	var b strings.Builder
	x := 0
	right := m.left + m.width
	clusters := Graphemes(line)
	for i, c := range clusters {
		w := graphemeWidth(c)
		if x >= m.left && x+w <= right {
			if i == cursor {
				b.WriteString(cursorOn + c + cursorOff)
			} else {
				b.WriteString(c)
			}
		}
		x += w
	}
	if cursor == len(clusters) && x >= m.left && x < right {
		b.WriteString(cursorOn + " " + cursorOff)
	}
	return b.String()
}
