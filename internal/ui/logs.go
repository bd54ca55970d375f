package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/stories/internal/logtail"
)

type logLinesMsg struct {
	lines []string
	err   error
}

// loadLogsCmd reads the tail of the log file off the update loop.
func (m Model) loadLogsCmd() tea.Cmd {
	path := m.logPath
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logger.Warn("read log failed", zap.String("path", m.logPath), zap.Error(msg.err))
		m.logLines = []string{"Unable to read log: " + msg.err.Error()}
	} else {
		m.logLines = msg.lines
	}
	m.renderLogContent()
	m.logViewport.GotoBottom()
}

func (m *Model) resizeLogViewport() {
	w, h := max(m.width-2, 1), max(m.height-chromeRows-2, 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(w, h)
		m.renderLogContent()
		return
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
}

func (m *Model) renderLogContent() {
	if len(m.logLines) == 0 {
		where := m.logPath
		if where == "" {
			where = "logging disabled"
		}
		m.logViewport.SetContent(m.theme.Styles().MutedText.Render("No log entries (" + where + ")"))
		return
	}
	lines := make([]string, len(m.logLines))
	for i, line := range m.logLines {
		lines[i] = m.formatLogLine(line)
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
}

// formatLogLine colors the columns of a console log line.
func (m Model) formatLogLine(line string) string {
	styles := m.theme.Styles()
	e := logtail.Parse(line)
	if e.Level == "" {
		return styles.Text.Render(e.Message)
	}
	level := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.LevelColor(e.Level))).
		Bold(true).
		Render(padRight(e.Level, 6))
	parts := []string{styles.FaintText.Render(e.Time), level, styles.Text.Render(e.Message)}
	if e.Fields != "" {
		parts = append(parts, styles.MutedText.Render(e.Fields))
	}
	return strings.Join(parts, " ")
}

// handleLogsKey scrolls the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
	case key.Matches(msg, m.keys.Down):
		m.logViewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logViewport.LineUp(1)
	default:
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// renderLogs renders the log view.
func (m Model) renderLogs(height int) string {
	title := "Log"
	if m.logPath != "" {
		title = "Log " + truncateMiddle(m.logPath, 48)
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, height, true)
}
