package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/carbon"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/logtail"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/monitor"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/prefs"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/state"
)

// Monitor is the telemetry client surface the UI reads and drives.
type Monitor interface {
	Target() string
	SetTarget(host string)
	Snapshot() state.Snapshot
	Connected() bool
	State() monitor.State
	LastError() error
	VideoURL() (string, bool)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Monitor   Monitor
	ThemeName string
	PrefsPath string // empty uses default ~/.config/carbon-monitor/prefs.toml
	LogPath   string // JSON log file shown in the events panel; empty hides it
	Refresh   time.Duration
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	mon       Monitor
	prefsPath string
	logPath   string
	refresh   time.Duration
	logger    *slog.Logger
	keys      keyMap
	now       func() time.Time

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	editing  bool
	input    textinput.Model
	notice   string

	// Data state
	status      statusMsg
	events      []logtail.Entry
	lastUpdated time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Prompt = "printer › "
	input.Placeholder = "192.168.1.50"
	input.CharLimit = 253

	return Model{
		ctx:       ctx,
		mon:       opts.Monitor,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		refresh:   refresh,
		logger:    logger.With("component", "ui"),
		keys:      DefaultKeyMap(),
		now:       time.Now,
		theme:     GetTheme(themeName),
		input:     input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchStatusCmd(m.mon),
		fetchEventsCmd(m.logPath),
		tickCmd(m.refresh),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-len(m.input.Prompt)-4)
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(
			fetchStatusCmd(m.mon),
			fetchEventsCmd(m.logPath),
			tickCmd(m.refresh),
		)

	case statusMsg:
		m.status = msg
		m.lastUpdated = m.now()
		return m, nil

	case eventsMsg:
		if msg.err != nil {
			m.notice = "events: " + msg.err.Error()
			return m, nil
		}
		m.events = msg.entries
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleInputKey(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = name })
		return m, nil

	case key.Matches(msg, m.keys.EditHost):
		m.editing = true
		m.notice = ""
		m.input.SetValue(m.status.target)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.ClearHost):
		if m.mon != nil {
			m.mon.SetTarget("")
		}
		m.notice = "disconnected"
		return m, fetchStatusCmd(m.mon)
	}
	return m, nil
}

// handleInputKey routes keys to the printer address field.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.editing = false
		m.input.Blur()
		host := carbon.NormalizeHost(m.input.Value())
		if strings.TrimSpace(m.input.Value()) != "" && host == "" {
			m.notice = "invalid printer address"
			return m, nil
		}
		if m.mon != nil {
			m.mon.SetTarget(host)
		}
		if host == "" {
			m.notice = "disconnected"
		} else {
			m.notice = "connecting to " + host
			m.savePrefs(func(p *prefs.Prefs) { p.LastPrinter = host })
		}
		m.logger.Info("printer address set", "host", host)
		return m, fetchStatusCmd(m.mon)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) savePrefs(fn func(*prefs.Prefs)) {
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.notice = "save prefs: " + err.Error()
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderPanels())
	return b.String()
}

// Messages

type tickMsg time.Time

// statusMsg is a consistent read of the monitor taken off the UI goroutine.
type statusMsg struct {
	snapshot  state.Snapshot
	connected bool
	state     monitor.State
	target    string
	err       error
	videoURL  string
}

type eventsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchStatusCmd(mon Monitor) tea.Cmd {
	if mon == nil {
		return nil
	}
	return func() tea.Msg {
		return readStatus(mon)
	}
}

func readStatus(mon Monitor) statusMsg {
	msg := statusMsg{
		snapshot:  mon.Snapshot(),
		connected: mon.Connected(),
		state:     mon.State(),
		target:    mon.Target(),
		err:       mon.LastError(),
	}
	if url, ok := mon.VideoURL(); ok {
		msg.videoURL = url
	}
	return msg
}

func fetchEventsCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Tail(path, EventLimit)
		return eventsMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	stop := context.AfterFunc(m.ctx, p.Quit)
	defer stop()

	_, err := p.Run()
	return err
}
