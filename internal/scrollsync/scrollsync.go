// Package scrollsync keeps the overlay viewport aligned with the scroll
// position of the text editor.
//
// Sync runs on every scroll-producing editor event. A repeating tick covers
// offset changes that produce no event of their own, such as a reflow after a
// resize or a new result.
package scrollsync

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the polling period.
const DefaultInterval = 150 * time.Millisecond

// Source reports a scroll offset in rows and columns.
type Source interface {
	ScrollOffset() (top, left int)
}

// Target accepts a scroll offset.
type Target interface {
	ScrollOffset() (top, left int)
	SetScrollOffset(top, left int)
}

// Sync copies the offset of src to dst and reports whether dst moved.
func Sync(src Source, dst Target) bool {
	top, left := src.ScrollOffset()
	curTop, curLeft := dst.ScrollOffset()
	if top == curTop && left == curLeft {
		return false
	}
	dst.SetScrollOffset(top, left)
	return true
}

// TickMsg is delivered every polling period.
type TickMsg struct {
	At time.Time
}

// Tick schedules the next TickMsg. The receiver re-arms it on every TickMsg
// for the lifetime of the program.
func Tick(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}
