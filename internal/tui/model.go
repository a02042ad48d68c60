// Package tui provides the Bubble Tea staffing dashboard.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/housekeep/internal/app"
	"github.com/verte-zerg/housekeep/internal/info"
	"github.com/verte-zerg/housekeep/internal/logger"
	"github.com/verte-zerg/housekeep/internal/model"
	"github.com/verte-zerg/housekeep/internal/report"
	"github.com/verte-zerg/housekeep/internal/staffing"
)

const (
	fieldHotel = iota
	fieldStayover
	fieldDeparture
	fieldArrival
	fieldShift
	fieldEfficiency
	fieldXML
	fieldCount
)

var fieldInfoKeys = map[int]string{
	fieldStayover:   info.Stayover,
	fieldDeparture:  info.Departure,
	fieldArrival:    info.Arrival,
	fieldShift:      info.Shift,
	fieldEfficiency: info.Efficiency,
}

// Model implements the Bubble Tea dashboard.
type Model struct {
	state *app.State

	plan    []model.StaffedDay
	summary model.Summary

	inputs []textinput.Model
	focus  int

	results table.Model

	infoOpen bool
	infoView viewport.Model

	status string
	errMsg string

	width  int
	height int

	// SaveErr records a failed save during shutdown.
	SaveErr error
}

// NewModel constructs a dashboard over st. xmlPath, if set, is loaded on start.
func NewModel(st *app.State, xmlPath string) *Model {
	m := &Model{
		state:    st,
		results:  newResultsTable(),
		infoView: viewport.New(0, 0),
	}
	m.initInputs()
	if xmlPath != "" {
		m.inputs[fieldXML].SetValue(xmlPath)
		m.calculate()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.shutdown()
			return m, tea.Quit
		}
		if m.infoOpen {
			return m.updateInfo(msg)
		}
		return m.updateMain(msg)
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		if msg.Type == tea.KeyDown && m.focus == fieldXML {
			m.results.MoveDown(1)
			return m, nil
		}
		return m, m.setFocus(m.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		if msg.Type == tea.KeyUp && m.focus == fieldXML {
			m.results.MoveUp(1)
			return m, nil
		}
		return m, m.setFocus(m.focus - 1)
	case tea.KeyPgDown:
		m.results.MoveDown(maxInt(1, m.results.Height()))
		return m, nil
	case tea.KeyPgUp:
		m.results.MoveUp(maxInt(1, m.results.Height()))
		return m, nil
	case tea.KeyEnter, tea.KeyCtrlR:
		m.calculate()
		return m, nil
	case tea.KeyCtrlS:
		m.save()
		return m, nil
	case tea.KeyF1:
		return m.openInfo(), nil
	case tea.KeyEsc:
		m.shutdown()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus != fieldHotel && m.focus != fieldXML {
		value := m.inputs[m.focus].Value()
		if digits := digitsOnly(value); digits != value {
			m.inputs[m.focus].SetValue(digits)
		}
	}
	return m, cmd
}

func (m *Model) updateInfo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q", "f1":
		m.infoOpen = false
		return m, nil
	}
	var cmd tea.Cmd
	m.infoView, cmd = m.infoView.Update(msg)
	return m, cmd
}

func (m *Model) initInputs() {
	s := m.state.Settings
	m.inputs = []textinput.Model{
		newInput("Hotel", s.HotelName, 64),
		newInput("Stayover (min)", strconv.Itoa(s.MinutesStayover), 4),
		newInput("Departure (min)", strconv.Itoa(s.MinutesDeparture), 4),
		newInput("Arrival (min)", strconv.Itoa(s.MinutesArrival), 4),
		newInput("Shift (min)", strconv.Itoa(s.ShiftMinutes), 4),
		newInput("Efficiency (%)", strconv.Itoa(s.EfficiencyPercent), 3),
		newInput("XML", m.state.XMLPath, 0),
	}
	m.inputs[fieldXML].Placeholder = "path to export .xml"
	m.setFocus(fieldXML)
}

func newInput(label, value string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = label
	input.CharLimit = limit
	input.Cursor.SetMode(cursor.CursorBlink)
	input.SetValue(value)
	return input
}

func (m *Model) setFocus(idx int) tea.Cmd {
	if idx < 0 {
		idx = fieldCount - 1
	}
	if idx >= fieldCount {
		idx = 0
	}
	m.focus = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// applyInputs reads the parameter inputs into the state. Unparseable
// numbers keep their previous value; the inputs then show the clamped values.
func (m *Model) applyInputs() {
	s := m.state.Settings
	s.HotelName = m.inputs[fieldHotel].Value()
	s.MinutesStayover = parseField(m.inputs[fieldStayover].Value(), s.MinutesStayover)
	s.MinutesDeparture = parseField(m.inputs[fieldDeparture].Value(), s.MinutesDeparture)
	s.MinutesArrival = parseField(m.inputs[fieldArrival].Value(), s.MinutesArrival)
	s.ShiftMinutes = parseField(m.inputs[fieldShift].Value(), s.ShiftMinutes)
	s.EfficiencyPercent = parseField(m.inputs[fieldEfficiency].Value(), s.EfficiencyPercent)
	m.state.SetSettings(s)
	m.syncInputs()
}

func (m *Model) syncInputs() {
	s := m.state.Settings
	m.inputs[fieldHotel].SetValue(s.HotelName)
	m.inputs[fieldStayover].SetValue(strconv.Itoa(s.MinutesStayover))
	m.inputs[fieldDeparture].SetValue(strconv.Itoa(s.MinutesDeparture))
	m.inputs[fieldArrival].SetValue(strconv.Itoa(s.MinutesArrival))
	m.inputs[fieldShift].SetValue(strconv.Itoa(s.ShiftMinutes))
	m.inputs[fieldEfficiency].SetValue(strconv.Itoa(s.EfficiencyPercent))
}

// calculate re-reads the selected export and recomputes every day. A failed
// load keeps the previous results on screen.
func (m *Model) calculate() {
	m.applyInputs()
	path := strings.TrimSpace(m.inputs[fieldXML].Value())
	if path == "" {
		m.setError("Load an XML export first.")
		return
	}
	if err := m.state.LoadXML(path); err != nil {
		m.setError(err.Error())
		return
	}
	m.refreshPlan()
	m.setStatus(fmt.Sprintf("Loaded %s (%d days)", filepath.Base(path), len(m.state.Rows)))
}

func (m *Model) refreshPlan() {
	m.plan = m.state.Plan()
	m.summary = staffing.Summarize(m.plan)
	rows := make([]table.Row, len(m.plan))
	for i, day := range m.plan {
		rows[i] = table.Row(report.Cells(day))
	}
	m.results.SetRows(rows)
	m.results.GotoTop()
}

func (m *Model) save() {
	m.applyInputs()
	if err := m.state.Save(); err != nil {
		m.setError(fmt.Sprintf("Save failed: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Settings saved to %s", m.state.SettingsPath))
}

// shutdown saves settings on the way out.
func (m *Model) shutdown() {
	m.applyInputs()
	if err := m.state.Save(); err != nil {
		m.SaveErr = err
		return
	}
	logger.Debug("settings saved on exit", "path", m.state.SettingsPath)
}

func (m *Model) openInfo() *Model {
	key, ok := fieldInfoKeys[m.focus]
	if !ok {
		m.setStatus("No description for this field. Focus a parameter and press F1.")
		return m
	}
	m.infoOpen = true
	m.infoView.SetContent(info.Lookup(key))
	m.infoView.GotoTop()
	m.updateLayout()
	return m
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.errMsg = ""
}

func (m *Model) setError(msg string) {
	m.errMsg = msg
	m.status = ""
}

func parseField(value string, previous int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return previous
	}
	return n
}

func digitsOnly(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
