package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/relens/internal/markup"
	"github.com/zjrosen/relens/internal/service"
	"github.com/zjrosen/relens/internal/ui/styles"
)

func init() {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
}

// mutableTheme lets tests toggle the injected theme.
type mutableTheme struct{ t styles.Theme }

func (m *mutableTheme) Theme() styles.Theme { return m.t }

func TestApply_Success(t *testing.T) {
	r := New(Options{})
	s := r.Apply(service.Result{
		Translated:  "(?:ab)+",
		Highlighted: "<mark>ab</mark>\nba",
		Accepted:    []service.Acceptance{{Line: "abc", OK: true}, {Line: "xyz", OK: false}},
	}, "ab\nba")

	require.False(t, s.Banner.Visible)
	require.Equal(t, "(?:ab)+", s.Translated.Raw)
	require.NotEmpty(t, s.Translated.Tokens)
	require.Contains(t, s.Translated.Markup, `<span class="group">(?:</span>`)
	require.Equal(t, "<mark>ab</mark><br>ba", s.Overlay.Markup)
	require.Equal(t, "<mark>ab</mark><br>ba", s.Summary.Markup)
	require.False(t, s.Summary.Empty)

	require.Equal(t, []Row{
		{Line: "abc", Status: "ACCEPTED", Class: ClassOK},
		{Line: "xyz", Status: "REJECTED", Class: ClassBad},
	}, s.Table.Rows)
}

func TestApply_ErrorPathClearsTable(t *testing.T) {
	r := New(Options{})
	s := r.Apply(service.Result{
		Error:      "bad pattern",
		Translated: "(a",
		Accepted:   []service.Acceptance{{Line: "a", OK: true}},
	}, "a<b")

	require.Empty(t, s.Table.Rows)
	require.True(t, s.Banner.Visible)
	require.Contains(t, s.Banner.Markup, "bad pattern")
	require.True(t, strings.HasPrefix(s.Banner.Markup, "<strong>Error:</strong> "))
	require.True(t, s.Summary.Empty)
	require.Equal(t, SummaryPlaceholder, s.Summary.Markup)
	require.Equal(t, "a&lt;b", s.Overlay.Markup, "overlay shows escaped live text")
	require.Equal(t, "(a", s.Translated.Raw, "partial translation is still shown")
}

func TestApply_BannerEscapesMessage(t *testing.T) {
	s := New(Options{}).Apply(service.Result{Error: "<script>x</script>"}, "")
	require.Equal(t, "<strong>Error:</strong> &lt;script&gt;x&lt;/script&gt;", s.Banner.Markup)
}

func TestApply_TableLinesAreEscaped(t *testing.T) {
	s := New(Options{}).Apply(service.Result{
		Accepted: []service.Acceptance{{Line: "<b>bold</b>", OK: true}},
	}, "")
	require.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", s.Table.Rows[0].Line)
}

func TestApply_OverlayTrustBoundary(t *testing.T) {
	r := New(Options{})

	trusted := r.Apply(service.Result{Highlighted: "a<b"}, "")
	require.Equal(t, "a<b", trusted.Overlay.Markup)

	plain := r.Apply(service.Result{Highlighted: "plain text & more"}, "")
	require.Equal(t, "plain text &amp; more", plain.Overlay.Markup)
}

func TestApply_StrictTrustSanitizes(t *testing.T) {
	r := New(Options{Trust: markup.TrustStrict})
	s := r.Apply(service.Result{Highlighted: `<mark>a</mark><img src=x onerror=alert(1)>`}, "")
	require.Equal(t, "<mark>a</mark>", s.Overlay.Markup)
}

func TestApply_EmptyHighlightUsesLiveText(t *testing.T) {
	s := New(Options{}).Apply(service.Result{Translated: "a"}, "x<y\nz")
	require.Equal(t, "x&lt;y<br>z", s.Overlay.Markup)
	require.True(t, s.Summary.Empty)
	require.Empty(t, s.Table.Rows)
}

func TestApply_IsWholesale(t *testing.T) {
	r := New(Options{})
	_ = r.Apply(service.Result{Translated: "a", Accepted: []service.Acceptance{{Line: "a", OK: true}}}, "a")
	second := r.Apply(service.Result{Translated: "b"}, "b")

	require.Empty(t, second.Table.Rows, "no rows carried over from the previous result")
	require.Equal(t, "b", second.Translated.Raw)
}

func TestClear(t *testing.T) {
	s := New(Options{}).Clear()
	require.Empty(t, s.Translated.Raw)
	require.Empty(t, s.Translated.Tokens)
	require.Empty(t, s.Overlay.Markup)
	require.True(t, s.Summary.Empty)
	require.Empty(t, s.Table.Rows)
	require.False(t, s.Banner.Visible)
}

func TestEcho_ReplacesOnlyOverlay(t *testing.T) {
	r := New(Options{})
	prev := r.Apply(service.Result{Translated: "a", Highlighted: "<mark>a</mark>"}, "a")

	s := r.Echo(prev, "ab&")
	require.Equal(t, "ab&amp;", s.Overlay.Markup)
	require.Equal(t, prev.Translated, s.Translated)
	require.Equal(t, prev.Summary, s.Summary)
}

func TestRestyle_KeepsTokens(t *testing.T) {
	theme := &mutableTheme{t: styles.ThemeDark}
	r := New(Options{Theme: theme})
	s := r.Apply(service.Result{Translated: "[a-z]+"}, "")
	darkView := r.Terminal(s, 0)

	theme.t = styles.ThemeLight
	restyled := r.Restyle(s)
	require.Equal(t, styles.ThemeLight, restyled.Theme)
	require.Equal(t, s.Translated.Tokens, restyled.Translated.Tokens)

	lightView := r.Terminal(restyled, 0)
	require.NotEqual(t, darkView.Translated, lightView.Translated)
	require.Equal(t, ansi.Strip(darkView.Translated), ansi.Strip(lightView.Translated))
}

func TestTerminal(t *testing.T) {
	r := New(Options{})
	s := r.Apply(service.Result{
		Translated:  "a&b",
		Highlighted: "<mark>ab</mark> c",
		Accepted:    []service.Acceptance{{Line: "abc", OK: true}, {Line: "a much longer line", OK: false}},
	}, "")

	v := r.Terminal(s, 20)
	require.Equal(t, "a&b", ansi.Strip(v.Translated))
	require.Equal(t, "ab c", ansi.Strip(v.Overlay))
	require.Empty(t, v.Banner)

	rows := strings.Split(ansi.Strip(v.Table), "\n")
	require.Len(t, rows, 2)
	require.True(t, strings.HasPrefix(rows[0], "abc"))
	require.True(t, strings.HasSuffix(rows[0], "ACCEPTED"))
	require.True(t, strings.HasSuffix(rows[1], "REJECTED"))
	require.LessOrEqual(t, lipgloss.Width(rows[1]), 20)
	require.Equal(t, lipgloss.Width(rows[0]), lipgloss.Width(rows[1]), "status column is aligned")
}

func TestTerminal_ErrorBanner(t *testing.T) {
	r := New(Options{})
	v := r.Terminal(r.Apply(service.Result{Error: "Network error: connection refused"}, ""), 0)
	require.Equal(t, "Error: Network error: connection refused", ansi.Strip(v.Banner))
	require.Equal(t, "No matches", ansi.Strip(v.Summary))
	require.Empty(t, v.Table)
}

func TestHTML(t *testing.T) {
	r := New(Options{Theme: FixedTheme(styles.ThemeLight)})
	out := HTML(r.Apply(service.Result{
		Translated: "a|b",
		Accepted:   []service.Acceptance{{Line: "a", OK: true}},
	}, ""))

	require.Contains(t, out, `class="relens light"`)
	require.Contains(t, out, `<div id="errorBox" class="error" hidden></div>`)
	require.Contains(t, out, `<span class="alt">|</span>`)
	require.Contains(t, out, `<tr><td>a</td><td class="ok">ACCEPTED</td></tr>`)
	require.Contains(t, out, SummaryPlaceholder)

	failed := HTML(r.Apply(service.Result{Error: "bad"}, ""))
	require.Contains(t, failed, `<div id="errorBox" class="error"><strong>Error:</strong> bad</div>`)
}
