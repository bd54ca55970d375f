package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/stories/internal/catalog"
)

// renderResults renders the result list, or the loading or error notice in
// its place.
func (m Model) renderResults(height int) string {
	focused := !m.input.Focused()
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	innerWidth := max(m.width-2, 1)
	innerHeight := max(height-2, 1)

	var body string
	switch {
	case m.snapshot.IsLoading:
		body = styles.WarningText.Render(m.spinner.View() + " Loading ...")
	case m.snapshot.IsError:
		body = styles.DangerText.Render("Something went wrong ...")
	case len(m.snapshot.Data) == 0:
		body = styles.MutedText.Render("No results")
	default:
		body = m.renderRows(innerWidth, innerHeight, bgColor)
	}

	title := fmt.Sprintf("Results (%d)", len(m.snapshot.Data))
	return m.renderTitledBox(title, body, m.width, height, focused)
}

// renderRows renders the column header and the visible window of records.
func (m Model) renderRows(width, height int, bgColor string) string {
	cols := m.schema.Columns
	widths := columnWidths(cols, width)
	styles := m.theme.Styles()

	header := lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Foreground(lipgloss.Color(m.theme.Faint)).
		Bold(true).
		Width(width).
		Render(formatCells(cols, widths, func(c catalog.Column) string { return c.Title }))

	visible := max(height-1, 1)
	offset := 0
	if m.selectedRow >= visible {
		offset = m.selectedRow - visible + 1
	}
	end := min(offset+visible, len(m.snapshot.Data))

	lines := []string{header}
	for i := offset; i < end; i++ {
		rec := m.snapshot.Data[i]
		text := formatCells(cols, widths, func(c catalog.Column) string { return rec.Text(c.Field) })
		style := styles.Text.Background(lipgloss.Color(bgColor))
		if i == m.selectedRow {
			style = styles.Selected
		}
		lines = append(lines, style.Width(width).Render(text))
	}
	return strings.Join(lines, "\n")
}

// columnWidths spreads width over cols. Fixed columns keep their width;
// flexible ones share the rest. Below LayoutCompactWidth only flexible
// columns are shown.
func columnWidths(cols []catalog.Column, width int) []int {
	widths := make([]int, len(cols))
	compact := width < LayoutCompactWidth
	used, flex := 0, 0
	for i, c := range cols {
		switch {
		case c.Width == 0:
			flex++
		case compact:
			widths[i] = 0
		default:
			widths[i] = c.Width
			used += c.Width + 1
		}
	}
	if flex == 0 {
		return widths
	}
	share := max((width-used-(flex-1))/flex, 1)
	for i, c := range cols {
		if c.Width == 0 {
			widths[i] = share
		}
	}
	return widths
}

func formatCells(cols []catalog.Column, widths []int, text func(catalog.Column) string) string {
	cells := make([]string, 0, len(cols))
	for i, c := range cols {
		if widths[i] == 0 {
			continue
		}
		cells = append(cells, fit(text(c), widths[i]))
	}
	return strings.Join(cells, " ")
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 1)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColor))
	contentLines := strings.Split(content, "\n")
	rows := max(height-2, 0)

	lines := make([]string, 0, rows+2)
	lines = append(lines, top)
	for i := 0; i < rows; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottom)
	return strings.Join(lines, "\n")
}
