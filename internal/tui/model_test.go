package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/housekeep/internal/app"
	"github.com/verte-zerg/housekeep/internal/settings"
)

const export = `<R>
<G_CONSIDERED_DATE><C_DATE>06/03/24</C_DATE><DAY_DESCRIPTION>Wednesday</DAY_DESCRIPTION><ROOMS_MORNING>0</ROOMS_MORNING></G_CONSIDERED_DATE>
<G_CONSIDERED_DATE><C_DATE>05/03/24</C_DATE><DAY_DESCRIPTION>Tuesday</DAY_DESCRIPTION><ROOMS_MORNING>10</ROOMS_MORNING><DEPARTURE_ROOM>4</DEPARTURE_ROOM><ARRIVAL_ROOM>3</ARRIVAL_ROOM></G_CONSIDERED_DATE>
</R>`

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "export.xml")
	if err := os.WriteFile(xmlPath, []byte(export), 0o644); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	st := app.New(filepath.Join(dir, settings.FileName))
	m := NewModel(st, xmlPath)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, dir
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewModelLoadsInitialExport(t *testing.T) {
	m, _ := newTestModel(t)
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if len(m.plan) != 2 || len(m.results.Rows()) != 2 {
		t.Fatalf("expected 2 planned days, got %d", len(m.plan))
	}
	first := m.plan[0]
	if first.Row.Date != "05/03/24" || first.Result.WorkloadMinutes != 310 || first.Result.StaffCount != 1 {
		t.Fatalf("unexpected first day: %+v", first)
	}
	if m.plan[1].Result.StaffCount != 0 {
		t.Fatalf("expected empty day to need no staff: %+v", m.plan[1])
	}
	view := m.View()
	for _, want := range []string{"My Hotel", "Tuesday", "310", "Peak 1 HK on 05/03/24"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestNumericFieldsAcceptDigitsOnly(t *testing.T) {
	m, _ := newTestModel(t)
	m.setFocus(fieldDeparture)
	m.inputs[fieldDeparture].SetValue("")
	typeText(m, "5x0")
	if got := m.inputs[fieldDeparture].Value(); got != "50" {
		t.Fatalf("expected digits only, got %q", got)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.Settings.MinutesDeparture != 50 {
		t.Fatalf("expected departure minutes 50, got %d", m.state.Settings.MinutesDeparture)
	}
	if m.plan[0].Result.WorkloadMinutes != 6*20+4*50+3*10 {
		t.Fatalf("plan not recomputed: %+v", m.plan[0])
	}
}

func TestInputsAreClampedOnCalculate(t *testing.T) {
	m, _ := newTestModel(t)
	m.inputs[fieldEfficiency].SetValue("200")
	m.inputs[fieldShift].SetValue("")
	m.inputs[fieldHotel].SetValue("   ")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	s := m.state.Settings
	if s.EfficiencyPercent != 150 || s.ShiftMinutes != 420 || s.HotelName != settings.DefaultHotelName {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if m.inputs[fieldEfficiency].Value() != "150" {
		t.Fatalf("expected input to show clamped value, got %q", m.inputs[fieldEfficiency].Value())
	}
}

func TestSaveWritesSettings(t *testing.T) {
	m, _ := newTestModel(t)
	m.inputs[fieldHotel].SetValue("Hotel Aurora")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if got := settings.Load(m.state.SettingsPath); got.HotelName != "Hotel Aurora" {
		t.Fatalf("expected saved hotel name, got %+v", got)
	}
}

func TestQuitAutoSaves(t *testing.T) {
	m, _ := newTestModel(t)
	m.inputs[fieldArrival].SetValue("12")
	cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.SaveErr != nil {
		t.Fatalf("unexpected save error: %v", m.SaveErr)
	}
	if got := settings.Load(m.state.SettingsPath); got.MinutesArrival != 12 {
		t.Fatalf("expected arrival minutes persisted, got %+v", got)
	}
}

func TestFailedLoadKeepsResults(t *testing.T) {
	m, dir := newTestModel(t)
	bad := filepath.Join(dir, "bad.xml")
	if err := os.WriteFile(bad, []byte("<R><G_CONSIDERED_DATE>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m.inputs[fieldXML].SetValue(bad)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.errMsg == "" {
		t.Fatalf("expected error message")
	}
	if len(m.plan) != 2 || len(m.results.Rows()) != 2 {
		t.Fatalf("previous results were discarded")
	}
}

func TestCalculateWithoutPath(t *testing.T) {
	st := app.New(filepath.Join(t.TempDir(), settings.FileName))
	m := NewModel(st, "")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.errMsg != "Load an XML export first." {
		t.Fatalf("unexpected error message: %q", m.errMsg)
	}
}

func TestInfoModal(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyF1})
	if m.infoOpen {
		t.Fatalf("info should not open for the xml field")
	}

	m.setFocus(fieldShift)
	press(m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.infoOpen {
		t.Fatalf("expected info modal")
	}
	if view := m.View(); !strings.Contains(view, "Shift minutes") {
		t.Fatalf("modal missing shift text")
	}
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.infoOpen {
		t.Fatalf("expected modal closed")
	}
}

func TestFocusWraps(t *testing.T) {
	m, _ := newTestModel(t)
	if m.focus != fieldXML {
		t.Fatalf("expected initial focus on xml field")
	}
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldHotel {
		t.Fatalf("expected wrap to hotel, got %d", m.focus)
	}
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldXML {
		t.Fatalf("expected wrap back to xml, got %d", m.focus)
	}
}
