package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/housekeep/internal/model"
)

const terminalWidthBackup = 80

// Column headers shared with the dashboard table.
var Headers = []string{"Date", "Day", "Arr", "Dep", "Stay", "Min", "HK"}

const dayColumn = 1

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Options controls plain-text rendering.
type Options struct {
	// Width limits the table width; 0 means unlimited.
	Width int
	Color bool
}

// Cells returns the display cells for one staffed day.
func Cells(day model.StaffedDay) []string {
	return []string{
		day.Row.Date,
		day.Row.DayLabel,
		strconv.Itoa(day.Row.Arrivals),
		strconv.Itoa(day.Row.Departures),
		strconv.Itoa(day.Row.Stayover),
		strconv.Itoa(day.Result.WorkloadMinutes),
		strconv.Itoa(day.Result.StaffCount),
	}
}

// SummaryLine formats a plan summary for footers and reports.
func SummaryLine(sum model.Summary) string {
	if sum.Days == 0 {
		return "No days loaded"
	}
	line := fmt.Sprintf("Days %d  ·  Total %d min  ·  Avg %.1f HK", sum.Days, sum.TotalWorkload, sum.AvgStaff)
	if sum.PeakStaff > 0 {
		line += fmt.Sprintf("  ·  Peak %d HK on %s", sum.PeakStaff, sum.PeakDate)
	}
	return line
}

// Render writes the hotel title, the plan table and its summary to w.
func Render(w io.Writer, hotel string, plan []model.StaffedDay, sum model.Summary, opts Options) error {
	rows := make([][]string, len(plan))
	for i, day := range plan {
		rows[i] = Cells(day)
	}
	truncateColumn(Headers, rows, dayColumn, opts.Width)
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}

	title := hotel
	summary := SummaryLine(sum)
	if opts.Color {
		title = titleStyle.Render(title)
		summary = mutedStyle.Render(summary)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(plan) == 0 {
		_, err := fmt.Fprintln(w, summary)
		return err
	}
	for _, line := range formatTable(Headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// TerminalOptions picks width and color for w.
func TerminalOptions(w io.Writer) Options {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return Options{}
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		width = terminalWidthBackup
	}
	return Options{Width: width, Color: os.Getenv("NO_COLOR") == ""}
}
