package clipboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultRevert is how long a copy result stays visible.
const DefaultRevert = 900 * time.Millisecond

// Icons shown on the copy button.
const (
	IconIdle   = "📋"
	IconCopied = "✓"
	IconFailed = "✖"
)

// Status is the copy acknowledgement state.
type Status int

const (
	StatusIdle Status = iota
	StatusCopied
	StatusFailed
)

// Feedback tracks the copy icon. Each result bumps a generation so only the
// newest revert takes effect.
type Feedback struct {
	status Status
	gen    int
	revert time.Duration
}

// NewFeedback creates an idle feedback with the given revert delay.
func NewFeedback(revert time.Duration) Feedback {
	if revert <= 0 {
		revert = DefaultRevert
	}
	return Feedback{revert: revert}
}

// RevertMsg resets the icon when its generation is still current.
type RevertMsg struct {
	Gen int
}

// Copy runs cb.Copy(text) and records the outcome. Empty text copies nothing
// and leaves the icon alone. Errors are only reflected in the icon.
func (f Feedback) Copy(cb Clipboard, text string) (Feedback, tea.Cmd) {
	if text == "" {
		return f, nil
	}
	if err := cb.Copy(text); err != nil {
		return f.set(StatusFailed)
	}
	return f.set(StatusCopied)
}

func (f Feedback) set(s Status) (Feedback, tea.Cmd) {
	f.status = s
	f.gen++
	gen := f.gen
	return f, tea.Tick(f.revert, func(time.Time) tea.Msg {
		return RevertMsg{Gen: gen}
	})
}

// Update handles RevertMsg.
func (f Feedback) Update(msg RevertMsg) Feedback {
	if msg.Gen == f.gen {
		f.status = StatusIdle
	}
	return f
}

// Status returns the current state.
func (f Feedback) Status() Status {
	return f.status
}

// Icon returns the glyph for the current state.
func (f Feedback) Icon() string {
	switch f.status {
	case StatusCopied:
		return IconCopied
	case StatusFailed:
		return IconFailed
	default:
		return IconIdle
	}
}
