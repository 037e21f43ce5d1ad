package prefs

import (
	"fmt"
	"sync"

	"github.com/zjrosen/relens/internal/config"
	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// Focus identifies one of the three inputs.
type Focus string

const (
	FocusPattern     Focus = "pattern"
	FocusConstraints Focus = "constraints"
	FocusText        Focus = "text"
)

// FocusOrder is the tab order of the inputs.
var FocusOrder = []Focus{FocusPattern, FocusConstraints, FocusText}

// ParseFocus accepts a known input id.
func ParseFocus(s string) (Focus, bool) {
	for _, f := range FocusOrder {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Next returns the input after f in tab order, wrapping around.
func (f Focus) Next() Focus {
	return f.offset(1)
}

// Prev returns the input before f in tab order, wrapping around.
func (f Focus) Prev() Focus {
	return f.offset(len(FocusOrder) - 1)
}

func (f Focus) offset(n int) Focus {
	for i, o := range FocusOrder {
		if o == f {
			return FocusOrder[(i+n)%len(FocusOrder)]
		}
	}
	return FocusPattern
}

// Prefs holds the persisted focus and theme. Values are read once by Load and
// written through on change. It is safe for concurrent use and satisfies
// render.ThemeSource.
type Prefs struct {
	mu    sync.RWMutex
	store Store
	theme styles.Theme
	focus Focus
}

// Load reads both keys from store. Missing or unrecognised values fall back
// to fallbackTheme and the pattern input. Read errors are logged, not fatal.
func Load(store Store, fallbackTheme styles.Theme) *Prefs {
	p := &Prefs{store: store, theme: fallbackTheme, focus: FocusPattern}
	if p.theme == "" {
		p.theme = styles.ThemeDark
	}

	if v, ok, err := store.Get(KeyTheme); err != nil {
		log.ErrorErr(log.CatPrefs, "Failed to read theme", err)
	} else if ok {
		if t, valid := styles.ParseTheme(v); valid {
			p.theme = t
		}
	}

	if v, ok, err := store.Get(KeyFocus); err != nil {
		log.ErrorErr(log.CatPrefs, "Failed to read focus", err)
	} else if ok {
		if f, valid := ParseFocus(v); valid {
			p.focus = f
		}
	}

	log.Debug(log.CatPrefs, "loaded preferences", "theme", p.theme, "focus", p.focus)
	return p
}

// Theme returns the current theme.
func (p *Prefs) Theme() styles.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Focus returns the last focused input.
func (p *Prefs) Focus() Focus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.focus
}

// ToggleTheme flips the theme and persists it. The in-memory value changes
// even if the write fails.
func (p *Prefs) ToggleTheme() (styles.Theme, error) {
	p.mu.Lock()
	p.theme = p.theme.Toggle()
	t := p.theme
	p.mu.Unlock()

	if err := p.store.Set(KeyTheme, string(t)); err != nil {
		return t, fmt.Errorf("saving theme: %w", err)
	}
	return t, nil
}

// SetFocus records f and persists it when it changed.
func (p *Prefs) SetFocus(f Focus) error {
	p.mu.Lock()
	if p.focus == f {
		p.mu.Unlock()
		return nil
	}
	p.focus = f
	p.mu.Unlock()

	if err := p.store.Set(KeyFocus, string(f)); err != nil {
		return fmt.Errorf("saving focus: %w", err)
	}
	return nil
}

// Close releases the underlying store.
func (p *Prefs) Close() error {
	return p.store.Close()
}

// Open returns the store selected by cfg.
func Open(cfg config.StateConfig) (Store, error) {
	path := cfg.ResolvedPath()
	switch cfg.Backend {
	case config.BackendSQLite:
		return NewSQLiteStore(path)
	case "", config.BackendFile:
		return NewFileStore(path)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}
