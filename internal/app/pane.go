package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
)

// overlayPane shows the highlighted sample text. It scrolls vertically
// through its viewport and horizontally by cutting lines, so it can follow
// the text editor exactly.
type overlayPane struct {
	vp    viewport.Model
	lines []string
	left  int
}

func newOverlayPane(width, height int) *overlayPane {
	return &overlayPane{vp: viewport.New(width, height)}
}

// SetContent replaces the rendered text and keeps the current offsets.
func (p *overlayPane) SetContent(s string) {
	p.lines = strings.Split(s, "\n")
	p.refresh()
}

// SetSize resizes the visible window.
func (p *overlayPane) SetSize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
	p.refresh()
}

// ScrollOffset implements scrollsync.Target.
func (p *overlayPane) ScrollOffset() (top, left int) {
	return p.vp.YOffset, p.left
}

// SetScrollOffset implements scrollsync.Target.
func (p *overlayPane) SetScrollOffset(top, left int) {
	if left != p.left {
		p.left = max(left, 0)
		p.refresh()
	}
	p.vp.SetYOffset(top)
}

func (p *overlayPane) refresh() {
	top := p.vp.YOffset
	cut := make([]string, len(p.lines))
	for i, line := range p.lines {
		cut[i] = ansi.Cut(line, p.left, p.left+p.vp.Width)
	}
	p.vp.SetContent(strings.Join(cut, "\n"))
	p.vp.SetYOffset(top)
}

func (p *overlayPane) View() string {
	return p.vp.View()
}
