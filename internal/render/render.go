package render

import (
	"github.com/zjrosen/relens/internal/highlight"
	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/markup"
	"github.com/zjrosen/relens/internal/service"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// ThemeSource supplies the current theme.
type ThemeSource interface {
	Theme() styles.Theme
}

// FixedTheme is a ThemeSource that never changes.
type FixedTheme styles.Theme

// Theme implements ThemeSource.
func (t FixedTheme) Theme() styles.Theme {
	return styles.Theme(t)
}

// Options configures a Renderer.
type Options struct {
	Trust  markup.TrustMode
	Theme  ThemeSource
	Styles *styles.Set
}

// Renderer turns service results into State. It holds no result state of its
// own; preferences come from the injected ThemeSource.
type Renderer struct {
	trust  markup.TrustMode
	theme  ThemeSource
	styles styles.Set
}

// New creates a Renderer. Zero options give sniffing trust, the dark theme
// and default styles.
func New(opts Options) *Renderer {
	r := &Renderer{trust: opts.Trust, theme: opts.Theme}
	if r.trust == "" {
		r.trust = markup.TrustSniff
	}
	if r.theme == nil {
		r.theme = FixedTheme(styles.ThemeDark)
	}
	if opts.Styles != nil {
		r.styles = *opts.Styles
	} else {
		r.styles = styles.DefaultSet()
	}
	return r
}

// Apply builds the state for res. liveText is the current sample text, shown
// escaped in the overlay when the result has no highlighted blob.
//
// A failed result shows the banner, empties the table and summary, and still
// displays whatever translated text the result carried.
func (r *Renderer) Apply(res service.Result, liveText string) State {
	s := State{
		Theme:      r.theme.Theme(),
		Translated: translated(res.Translated),
	}

	if res.Failed() {
		log.Debug(log.CatRender, "applying failed result", "error", res.Error)
		s.Banner = banner(res.Error)
		s.Overlay = Overlay{Markup: markup.Breaks(markup.Escape(liveText))}
		s.Summary = summary("", r.trust)
		return s
	}

	s.Overlay = r.overlay(res.Highlighted, liveText)
	s.Summary = summary(res.Highlighted, r.trust)
	s.Table = table(res.Accepted)
	return s
}

// Echo is the state shown while a request is pending: the previous result
// with the overlay replaced by the escaped live text.
func (r *Renderer) Echo(prev State, liveText string) State {
	prev.Overlay = Overlay{Markup: markup.Breaks(markup.Escape(liveText))}
	return prev
}

// Clear returns the empty state of every target.
func (r *Renderer) Clear() State {
	return State{
		Theme:   r.theme.Theme(),
		Summary: summary("", r.trust),
	}
}

// Restyle stamps the current theme onto s. Tokens are kept as they are.
func (r *Renderer) Restyle(s State) State {
	s.Theme = r.theme.Theme()
	return s
}

// Styles returns the styles for s.
func (r *Renderer) Styles(s State) styles.Styles {
	return r.styles.For(s.Theme)
}

func (r *Renderer) overlay(highlighted, liveText string) Overlay {
	if highlighted == "" {
		return Overlay{Markup: markup.Breaks(markup.Escape(liveText))}
	}
	return Overlay{Markup: markup.Blob(highlighted, r.trust)}
}

func translated(raw string) Translated {
	if raw == "" {
		return Translated{}
	}
	tokens := highlight.Tokenize(raw)
	return Translated{Raw: raw, Tokens: tokens, Markup: highlight.Markup(tokens)}
}

func summary(highlighted string, trust markup.TrustMode) Summary {
	if highlighted == "" {
		return Summary{Markup: SummaryPlaceholder, Empty: true}
	}
	return Summary{Markup: markup.Blob(highlighted, trust)}
}

func table(accepted []service.Acceptance) Table {
	if len(accepted) == 0 {
		return Table{}
	}
	rows := make([]Row, len(accepted))
	for i, a := range accepted {
		rows[i] = Row{Line: markup.Escape(a.Line), Status: a.Status(), Class: ClassBad}
		if a.OK {
			rows[i].Class = ClassOK
		}
	}
	return Table{Rows: rows}
}

func banner(msg string) Banner {
	if msg == "" {
		return Banner{}
	}
	return Banner{
		Visible: true,
		Markup:  "<strong>Error:</strong> " + markup.Escape(msg),
		Message: msg,
	}
}
