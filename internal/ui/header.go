package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const searchLabel = "Search:"

// renderHeader renders the status line: logo, schema and fetch status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("stories", styles.Logo),
		bg.Render(m.schema.Name, styles.MutedText),
	}

	snap := m.snapshot
	switch {
	case snap.IsLoading:
		parts = append(parts, bg.Render(m.spinner.View()+" Loading", styles.WarningText.Bold(true)))
	case snap.IsError:
		parts = append(parts, bg.Render("● ERROR", styles.DangerText))
	default:
		parts = append(parts,
			bg.Render("Results:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(snap.Data)), styles.SuccessText))
	}
	if !snap.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(snap.LastUpdated.Format("15:04:05"), styles.InfoText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderSearch renders the labelled search input.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	label := styles.MutedText.Render(searchLabel)
	if m.input.Focused() {
		label = styles.AccentText.Bold(true).Render(searchLabel)
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, " ", label, " ", m.input.View())
	return lipgloss.NewStyle().Width(m.width).Render(line)
}

// renderCommandBar renders the key hints for the current mode.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.input.Focused():
		commands = []cmd{{"enter", "Search"}, {"esc", "Done"}, {"ctrl+c", "Quit"}}
	case m.currentView == ViewLogs:
		commands = []cmd{{"j/k", "Scroll"}, {"g/G", "Top/Bottom"}, {"L", "Results"}, {"?", "More"}}
	default:
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			commands = append(commands, cmd{h.Key, h.Desc})
		}
	}

	parts := make([]string, 0, len(commands))
	for _, c := range commands {
		parts = append(parts, bg.Render(c.key, styles.AccentText)+bg.Space()+bg.Render(c.desc, styles.MutedText))
	}
	return bg.FillLine(bg.Space()+strings.Join(parts, bg.Spaces(2)), m.width)
}
