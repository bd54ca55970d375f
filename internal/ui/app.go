package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/stories/internal/catalog"
	"github.com/five82/stories/internal/persist"
	"github.com/five82/stories/internal/query"
	"github.com/five82/stories/internal/results"
)

// View represents the current active view.
type View int

const (
	ViewResults View = iota
	ViewLogs
)

// SnapshotSource exposes the latest result set.
type SnapshotSource interface {
	Snapshot() results.Snapshot
}

// Options configures the UI. Controller, Orchestrator and Results are
// required.
type Options struct {
	Context      context.Context
	Controller   *query.Controller
	Orchestrator *query.Orchestrator
	Results      SnapshotSource
	Schema       catalog.Schema
	Theme        *persist.Value // persisted theme name, optional
	LogPath      string
	Logger       *zap.Logger
	OpenURL      func(string) error // defaults to the system browser
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *query.Controller
	orch      *query.Orchestrator
	results   SnapshotSource
	schema    catalog.Schema
	themePref *persist.Value
	logPath   string
	logger    *zap.Logger
	openURL   func(string) error

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	notice      string

	input   textinput.Model
	spinner spinner.Model

	// Data state
	snapshot    results.Snapshot
	selectedRow int

	// Log state
	logViewport viewport.Model
	logLines    []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = openBrowser
	}
	schema := opts.Schema
	if schema.Name == "" {
		schema = catalog.Stories
	}

	themeName := ""
	if opts.Theme != nil {
		themeName = opts.Theme.Get()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search " + schema.Name + "..."
	ti.CharLimit = 200
	ti.SetValue(opts.Controller.DraftTerm())
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:         ctx,
		ctrl:        opts.Controller,
		orch:        opts.Orchestrator,
		results:     opts.Results,
		schema:      schema,
		themePref:   opts.Theme,
		logPath:     opts.LogPath,
		logger:      logger,
		openURL:     openURL,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewResults,
		input:       ti,
		spinner:     sp,
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.snapshot = m.results.Snapshot()
	return m
}

// Init implements tea.Model. It commits the persisted term and starts the
// first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startFetch(m.ctrl.Mount()))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(m.width-len(searchLabel)-4, 10)
		m.resizeLogViewport()
		m.refresh()
		return m, nil

	case fetchResultMsg:
		m.orch.Complete(msg.result)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		m.refresh()
		if !m.snapshot.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil

	case openResultMsg:
		if msg.err != nil {
			m.notice = "Unable to open link"
			m.logger.Warn("open link failed", zap.String("url", msg.url), zap.Error(msg.err))
		}
		return m, nil
	}

	if m.input.Focused() {
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

	contentHeight := max(m.height-chromeRows, 3)
	var content string
	switch m.currentView {
	case ViewLogs:
		content = m.renderLogs(contentHeight)
	default:
		content = m.renderResults(contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearch(),
		content,
		m.renderCommandBar(),
	)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.input.Focused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.ToggleLogs):
		if m.currentView == ViewLogs {
			m.currentView = ViewResults
			return m, nil
		}
		m.currentView = ViewLogs
		return m, m.loadLogsCmd()
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewResults
		m.notice = ""
		return m, nil
	case key.Matches(msg, m.keys.FocusSearch):
		m.currentView = ViewResults
		m.notice = ""
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleResultsKey(msg)
	}
}

// handleInputKey edits the draft term. Typing persists the draft but never
// fetches; only enter commits it.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.input.Blur()
		return m, m.submit()
	case key.Matches(msg, m.keys.Escape):
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		if err := m.ctrl.SetDraftTerm(value); err != nil {
			m.logger.Warn("persist search term failed", zap.Error(err))
		}
	}
	return m, cmd
}

// handleResultsKey processes keyboard input for the results list.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.listVisible() {
		return m, nil
	}
	rows := len(m.snapshot.Data)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < rows-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = rows - 1
	case key.Matches(msg, m.keys.Dismiss):
		m.dismissSelected()
	case key.Matches(msg, m.keys.Open):
		return m, m.openSelected()
	}
	return m, nil
}

func (m *Model) submit() tea.Cmd {
	m.notice = ""
	cmd := m.startFetch(m.ctrl.Submit())
	m.selectedRow = 0
	m.refresh()
	return cmd
}

// startFetch dispatches FetchStart now and runs the network call as a
// command.
func (m Model) startFetch(url string) tea.Cmd {
	cycle := m.orch.Start(url)
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return fetchResultMsg{result: cycle.Do(ctx)}
	})
}

func (m *Model) refresh() {
	m.snapshot = m.results.Snapshot()
	if m.selectedRow >= len(m.snapshot.Data) {
		m.selectedRow = len(m.snapshot.Data) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m Model) listVisible() bool {
	return !m.snapshot.IsLoading && !m.snapshot.IsError && len(m.snapshot.Data) > 0
}

func (m Model) selectedRecord() (catalog.Record, bool) {
	if !m.listVisible() || m.selectedRow >= len(m.snapshot.Data) {
		return catalog.Record{}, false
	}
	return m.snapshot.Data[m.selectedRow], true
}

func (m *Model) dismissSelected() {
	rec, ok := m.selectedRecord()
	if !ok {
		return
	}
	m.orch.Remove(rec)
	m.refresh()
}

func (m *Model) openSelected() tea.Cmd {
	rec, ok := m.selectedRecord()
	if !ok {
		return nil
	}
	link := m.schema.Link(rec)
	if link == "" {
		m.notice = "No link for this result"
		return nil
	}
	open := m.openURL
	return func() tea.Msg {
		return openResultMsg{url: link, err: open(link)}
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	if m.themePref != nil {
		if err := m.themePref.Set(m.theme.Name); err != nil {
			m.logger.Warn("persist theme failed", zap.Error(err))
		}
	}
	m.renderLogContent()
}

// Messages

type fetchResultMsg struct {
	result query.Result
}

type openResultMsg struct {
	url string
	err error
}

// NewProgram builds the Bubble Tea program for opts on the alternate screen.
func NewProgram(opts Options, programOpts ...tea.ProgramOption) *tea.Program {
	all := append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)
	return tea.NewProgram(New(opts), all...)
}
