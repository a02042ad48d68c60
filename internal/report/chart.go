package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/housekeep/internal/model"
)

const (
	chartSeparator = " │ "
	chartBar       = '█'
	minChartWidth  = 10
	colorReset     = "\x1b[0m"
)

// Bars go from calm to busy as the day approaches the peak.
var chartPalette = []string{
	"\x1b[32m", // green
	"\x1b[33m", // yellow
	"\x1b[35m", // magenta
}

// Chart writes one horizontal bar per day, scaled so the peak fills the
// available width. Days with no staff get an empty bar.
func Chart(w io.Writer, plan []model.StaffedDay, opts Options) error {
	if len(plan) == 0 {
		return nil
	}
	peak := 0
	labelWidth := 0
	countWidth := 0
	for _, day := range plan {
		peak = max(peak, day.Result.StaffCount)
		labelWidth = max(labelWidth, runewidth.StringWidth(day.Row.Date))
		countWidth = max(countWidth, len(strconv.Itoa(day.Result.StaffCount)))
	}

	width := opts.Width
	if width <= 0 {
		width = terminalWidthBackup
	}
	barWidth := width - labelWidth - runewidth.StringWidth(chartSeparator) - countWidth - 1
	if barWidth < minChartWidth {
		barWidth = minChartWidth
	}

	for _, day := range plan {
		n := barLength(day.Result.StaffCount, peak, barWidth)
		bar := strings.Repeat(string(chartBar), n)
		if opts.Color && n > 0 {
			bar = barColor(day.Result.StaffCount, peak) + bar + colorReset
		}
		label := padCell(day.Row.Date, labelWidth, false)
		pad := strings.Repeat(" ", barWidth-n+1)
		count := padCell(strconv.Itoa(day.Result.StaffCount), countWidth, true)
		line := strings.TrimRight(label+chartSeparator+bar+pad+count, " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// barLength scales value into [0, width]. Any non-zero value gets at least one cell.
func barLength(value, peak, width int) int {
	if value <= 0 || peak <= 0 {
		return 0
	}
	n := value * width / peak
	return max(1, min(width, n))
}

func barColor(value, peak int) string {
	idx := (value*len(chartPalette) - 1) / peak
	return chartPalette[min(len(chartPalette)-1, max(0, idx))]
}
