// Package clipboard copies the translated pattern and tracks the copy
// acknowledgement icon.
package clipboard

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/zjrosen/relens/internal/log"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// Func adapts a function to Clipboard.
type Func func(text string) error

func (f Func) Copy(text string) error { return f(text) }

// System copies to the local system clipboard, or emits an OSC52 sequence
// when the session is remote or no clipboard utility is installed.
type System struct {
	out    io.Writer
	getenv func(string) string
	local  func(string) error
	// unsupported reports that no local clipboard utility exists.
	unsupported bool
}

// NewSystem returns a System clipboard writing OSC52 sequences to stderr.
func NewSystem() *System {
	return &System{
		out:         os.Stderr,
		getenv:      os.Getenv,
		local:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

// Copy copies text. Remote sessions (SSH) always use OSC52 so the text lands
// on the user's machine.
func (s *System) Copy(text string) error {
	if s.remote() || s.unsupported {
		return s.osc52(text)
	}
	if err := s.local(text); err != nil {
		log.Debug(log.CatUI, "system clipboard failed, falling back to osc52", "error", err)
		return s.osc52(text)
	}
	return nil
}

func (s *System) remote() bool {
	return s.getenv("SSH_TTY") != "" || s.getenv("SSH_CONNECTION") != ""
}

func (s *System) osc52(text string) error {
	seq := osc52.New(text)
	switch {
	case s.getenv("TMUX") != "":
		seq = seq.Tmux()
	case s.getenv("STY") != "":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(s.out); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}
