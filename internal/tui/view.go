package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/housekeep/internal/report"
)

const (
	panelWidth = 36
	labelWidth = 16
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Width(labelWidth)
	focusStyle = labelStyle.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC47F"))
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

var fieldLabels = []string{
	"Hotel",
	"Stayover (min)",
	"Departure (min)",
	"Arrival (min)",
	"Shift (min)",
	"Efficiency (%)",
	"XML export",
}

var columnWidths = []int{10, 14, 4, 4, 5, 6, 4}

func newResultsTable() table.Model {
	columns := make([]table.Column, len(report.Headers))
	for i, title := range report.Headers {
		columns[i] = table.Column{Title: title, Width: columnWidths[i]}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(10),
		table.WithFocused(true),
	)
	t.SetStyles(resultsTableStyles())
	return t
}

func resultsTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	return styles
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.infoOpen {
		return m.renderInfoModal()
	}
	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderParams(), m.renderResults())
	footer := m.renderFooter()
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	// header (1) + footer (3) + panel borders (2) + table header (2)
	m.results.SetHeight(maxInt(1, m.height-8))
	resultsWidth := maxInt(20, m.width-panelWidth-4)
	m.results.SetWidth(resultsWidth)
	for i := range m.inputs {
		m.inputs[i].Width = panelWidth - labelWidth - 4
	}
	m.inputs[fieldXML].Width = panelWidth - 4
	w := modalWidth(m.width)
	m.infoView.Width = w - 6
	m.infoView.Height = maxInt(3, minInt(m.height-8, 24))
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render(m.state.Settings.HotelName + " · Housekeeping")
	path := mutedStyle.Render("settings: " + m.state.SettingsPath)
	return title + "  " + path
}

func (m *Model) renderParams() string {
	lines := []string{titleStyle.Render("Parameters")}
	for i := fieldHotel; i < fieldXML; i++ {
		lines = append(lines, m.renderField(i))
	}
	lines = append(lines, "", m.renderLabel(fieldXML), m.inputs[fieldXML].View())
	if m.state.XMLPath != "" {
		lines = append(lines, mutedStyle.Render(truncate("loaded: "+m.state.XMLPath, panelWidth-4)))
	} else {
		lines = append(lines, mutedStyle.Render("No file selected"))
	}
	return panelStyle.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderField(idx int) string {
	return m.renderLabel(idx) + m.inputs[idx].View()
}

func (m *Model) renderLabel(idx int) string {
	if idx == m.focus {
		return focusStyle.Render("› " + fieldLabels[idx])
	}
	return labelStyle.Render("  " + fieldLabels[idx])
}

func (m *Model) renderResults() string {
	var content string
	if len(m.plan) == 0 {
		content = mutedStyle.Render("No results yet. Enter an XML path and press enter.")
	} else {
		content = m.results.View()
	}
	return panelStyle.Render(content)
}

func (m *Model) renderFooter() string {
	lines := []string{
		m.renderSummary(),
		m.renderHelp(),
	}
	switch {
	case m.errMsg != "":
		lines = append(lines, errorStyle.Render(truncate(m.errMsg, m.width)))
	case m.status != "":
		lines = append(lines, okStyle.Render(truncate(m.status, m.width)))
	default:
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	return titleStyle.Render(report.SummaryLine(m.summary))
}

func (m *Model) renderHelp() string {
	help := "tab/shift+tab: field  enter/ctrl+r: calculate  ctrl+s: save  F1: info  pgup/pgdn: scroll  esc: quit"
	return mutedStyle.Render(truncate(help, m.width))
}

func (m *Model) renderInfoModal() string {
	title := titleStyle.Render(fmt.Sprintf("About: %s", fieldLabels[m.focus]))
	body := []string{
		title,
		"",
		m.infoView.View(),
		"",
		mutedStyle.Render("esc: close  up/down: scroll"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 72))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
