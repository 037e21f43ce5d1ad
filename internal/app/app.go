// Package app contains the root application model.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/relens/internal/clipboard"
	"github.com/zjrosen/relens/internal/config"
	"github.com/zjrosen/relens/internal/keys"
	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/orchestrator"
	"github.com/zjrosen/relens/internal/prefs"
	"github.com/zjrosen/relens/internal/render"
	"github.com/zjrosen/relens/internal/scrollsync"
	"github.com/zjrosen/relens/internal/service"
	"github.com/zjrosen/relens/internal/ui/editor"
	"github.com/zjrosen/relens/internal/ui/help"
	"github.com/zjrosen/relens/internal/ui/logoverlay"
	"github.com/zjrosen/relens/internal/ui/styles"
)

// Zone IDs for mouse click detection.
const (
	zoneRun     = "relens-run"
	zoneClear   = "relens-clear"
	zoneCopy    = "relens-copy"
	zoneTheme   = "relens-theme"
	zoneSummary = "relens-summary"
	zoneInput   = "relens-input:"
)

// debounceMsg is delivered when the debounce window of ticket expires.
type debounceMsg struct {
	ticket orchestrator.Ticket
}

// resultMsg carries the service response to req.
type resultMsg struct {
	req orchestrator.Request
	res service.Result
}

// Options holds the collaborators of the root model.
type Options struct {
	Config    config.Config
	Client    service.Client
	Prefs     *prefs.Prefs
	Clipboard clipboard.Clipboard
	// Styles carries configured color overrides; nil uses the defaults.
	Styles *styles.Set
	// Initial prefills the inputs and runs once at startup.
	Initial service.Snapshot
	// Debug enables the log overlay.
	Debug bool
}

// Model is the root application state.
type Model struct {
	cfg      config.Config
	client   service.Client
	prefs    *prefs.Prefs
	clip     clipboard.Clipboard
	orch     *orchestrator.Orchestrator
	renderer *render.Renderer

	ctx    context.Context
	cancel context.CancelFunc

	inputs   [3]editor.Model
	focus    prefs.Focus
	state    render.State
	view     render.TerminalView
	overlay  *overlayPane
	summary  viewport.Model
	feedback clipboard.Feedback
	startup  *orchestrator.Request

	help     help.Model
	showHelp bool

	debug       bool
	logs        logoverlay.Model
	logListener *log.LogListener

	width  int
	height int
}

// New creates the root model. Focus and theme come from opts.Prefs.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		cfg:    opts.Config,
		client: opts.Client,
		prefs:  opts.Prefs,
		clip:   opts.Clipboard,
		orch: orchestrator.New(orchestrator.Options{
			Delay:      opts.Config.Orchestrator.Debounce,
			Sequencing: opts.Config.Orchestrator.Sequencing,
		}),
		renderer: render.New(render.Options{
			Trust:  opts.Config.Render.Trust(),
			Theme:  opts.Prefs,
			Styles: opts.Styles,
		}),
		ctx:      ctx,
		cancel:   cancel,
		overlay:  newOverlayPane(0, 0),
		summary:  viewport.New(0, 0),
		feedback: clipboard.NewFeedback(opts.Config.UI.CopyFeedback),
		help:     help.New(opts.Prefs.Theme()),
		debug:    opts.Debug,
	}

	m.inputs[inputIndex(prefs.FocusPattern)] = editor.New(false)
	m.inputs[inputIndex(prefs.FocusConstraints)] = editor.New(true)
	m.inputs[inputIndex(prefs.FocusText)] = editor.New(true)
	m.input(prefs.FocusPattern).SetPlaceholder("Describe a pattern, e.g. three digits then a dash")
	m.input(prefs.FocusConstraints).SetPlaceholder("Optional constraints, one per line")
	m.input(prefs.FocusText).SetPlaceholder("Sample text to match against")

	m.state = m.renderer.Clear()
	m.applyStyles()
	m.logs = logoverlay.New(m.styles())
	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}

	m.focusInput(opts.Prefs.Focus(), false)

	if !opts.Initial.IsEmpty() {
		m.input(prefs.FocusPattern).SetValue(opts.Initial.Pattern)
		m.input(prefs.FocusConstraints).SetValue(opts.Initial.Constraints)
		m.input(prefs.FocusText).SetValue(opts.Initial.Text)
		m.state = m.renderer.Echo(m.state, opts.Initial.Text)
		req := m.orch.Run(m.snapshot())
		m.startup = &req
	}
	m.refresh()
	return m
}

// Init implements tea.Model. It starts the scroll sync tick, the startup
// request and the log listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{scrollsync.Tick(m.cfg.UI.ScrollSyncInterval)}
	if m.startup != nil {
		cmds = append(cmds, m.request(*m.startup))
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Close cancels in-flight requests and stops listeners.
func (m Model) Close() error {
	m.cancel()
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logs.SetSize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case scrollsync.TickMsg:
		scrollsync.Sync(m.input(prefs.FocusText), m.overlay)
		return m, scrollsync.Tick(m.cfg.UI.ScrollSyncInterval)

	case debounceMsg:
		req, ok := m.orch.Fire(msg.ticket)
		if !ok {
			return m, nil
		}
		return m, m.request(req)

	case resultMsg:
		res, ok := m.orch.Complete(msg.req, msg.res)
		if !ok {
			log.Debug(log.CatOrch, "Discarded stale response", "seq", msg.req.Seq)
			return m, nil
		}
		m.state = m.renderer.Apply(res, m.input(prefs.FocusText).Value())
		m.refresh()
		return m, nil

	case clipboard.RevertMsg:
		m.feedback = m.feedback.Update(msg)
		return m, nil

	case log.LogEvent:
		m.logs, _ = m.logs.Update(msg)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.App

	if key.Matches(msg, k.Quit) {
		return m, tea.Quit
	}

	if m.debug && key.Matches(msg, k.Logs) {
		m.logs.Toggle()
		return m, nil
	}
	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, k.Help, k.Escape) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, k.NextInput):
		m.focusInput(m.focus.Next(), true)
		return m, nil
	case key.Matches(msg, k.PrevInput):
		m.focusInput(m.focus.Prev(), true)
		return m, nil
	case key.Matches(msg, k.Run):
		return m.run()
	case key.Matches(msg, k.Clear):
		return m.clear()
	case key.Matches(msg, k.Copy):
		return m.copy()
	case key.Matches(msg, k.Theme):
		return m.toggleTheme()
	case key.Matches(msg, k.ScrollSummaryUp):
		m.summary.ScrollUp(1)
		return m, nil
	case key.Matches(msg, k.ScrollSummaryDown):
		m.summary.ScrollDown(1)
		return m, nil
	case m.focus == prefs.FocusPattern && key.Matches(msg, keys.Editor.Newline):
		return m.run()
	}

	return m.edit(msg)
}

// edit forwards msg to the focused input. A changed value restarts the
// debounce window; a changed sample text is echoed into the overlay.
func (m Model) edit(msg tea.Msg) (tea.Model, tea.Cmd) {
	in := m.input(m.focus)
	before := in.Value()
	*in, _ = in.Update(msg)
	scrollsync.Sync(m.input(prefs.FocusText), m.overlay)

	if in.Value() == before {
		return m, nil
	}

	snap := m.snapshot()
	ticket := m.orch.Edit(snap)
	if m.focus == prefs.FocusText {
		m.state = m.renderer.Echo(m.state, snap.Text)
		m.refresh()
	}
	return m, tea.Tick(m.orch.Delay(), func(time.Time) tea.Msg {
		return debounceMsg{ticket: ticket}
	})
}

func (m Model) run() (tea.Model, tea.Cmd) {
	req := m.orch.Run(m.snapshot())
	return m, m.request(req)
}

// clear empties the inputs and every result target.
func (m Model) clear() (tea.Model, tea.Cmd) {
	m.orch.Clear()
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.state = m.renderer.Clear()
	m.summary.GotoTop()
	m.refresh()
	log.Debug(log.CatUI, "Cleared inputs and results")
	return m, nil
}

func (m Model) copy() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.feedback, cmd = m.feedback.Copy(m.clip, m.state.Translated.Raw)
	return m, cmd
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	theme, err := m.prefs.ToggleTheme()
	if err != nil {
		log.Warn(log.CatPrefs, "Failed to save theme", "error", err)
	}
	m.state = m.renderer.Restyle(m.state)
	m.help = m.help.SetTheme(theme)
	m.logs.SetStyles(m.styles())
	m.applyStyles()
	m.refresh()
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		if inBounds(zoneSummary, msg) {
			if delta < 0 {
				m.summary.ScrollUp(1)
			} else {
				m.summary.ScrollDown(1)
			}
			return m, nil
		}
		for _, f := range prefs.FocusOrder {
			if inBounds(zoneInput+string(f), msg) {
				m.input(f).ScrollBy(delta)
				scrollsync.Sync(m.input(prefs.FocusText), m.overlay)
				return m, nil
			}
		}
		return m, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return m, nil
		}
	default:
		return m, nil
	}

	switch {
	case inBounds(zoneRun, msg):
		return m.run()
	case inBounds(zoneClear, msg):
		return m.clear()
	case inBounds(zoneCopy, msg):
		return m.copy()
	case inBounds(zoneTheme, msg):
		return m.toggleTheme()
	}
	for _, f := range prefs.FocusOrder {
		if inBounds(zoneInput+string(f), msg) {
			m.focusInput(f, true)
			return m, nil
		}
	}
	return m, nil
}

func inBounds(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

// request runs req on the client off the update loop.
func (m Model) request(req orchestrator.Request) tea.Cmd {
	client, ctx := m.client, m.ctx
	log.Debug(log.CatOrch, "Issuing request", "seq", req.Seq, "manual", req.Manual)
	return func() tea.Msg {
		return resultMsg{req: req, res: client.Run(ctx, req.Snapshot)}
	}
}

// focusInput moves focus to f. save writes the new focus through to prefs.
func (m *Model) focusInput(f prefs.Focus, save bool) {
	if _, ok := prefs.ParseFocus(string(f)); !ok {
		f = prefs.FocusPattern
	}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.input(f).Focus()
	m.focus = f
	if !save {
		return
	}
	if err := m.prefs.SetFocus(f); err != nil {
		log.Warn(log.CatPrefs, "Failed to save focus", "error", err)
	}
}

func (m Model) snapshot() service.Snapshot {
	return service.Snapshot{
		Pattern:     m.inputs[inputIndex(prefs.FocusPattern)].Value(),
		Constraints: m.inputs[inputIndex(prefs.FocusConstraints)].Value(),
		Text:        m.inputs[inputIndex(prefs.FocusText)].Value(),
	}
}

func (m *Model) input(f prefs.Focus) *editor.Model {
	return &m.inputs[inputIndex(f)]
}

func inputIndex(f prefs.Focus) int {
	for i, o := range prefs.FocusOrder {
		if o == f {
			return i
		}
	}
	return 0
}

func (m Model) styles() styles.Styles {
	return m.renderer.Styles(m.state)
}

func (m *Model) applyStyles() {
	st := m.styles()
	for i := range m.inputs {
		m.inputs[i].SetPlaceholderStyle(st.Placeholder)
	}
}
