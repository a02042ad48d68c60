// Package report renders staffing plans as text tables, bar charts and
// spreadsheets.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := columnWidths(headers, rows, colCount)
	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func columnWidths(headers []string, rows [][]string, colCount int) []int {
	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}

// truncateColumn shortens cells in col so that a table of the given rows
// fits in maxWidth. Other columns are left intact.
func truncateColumn(headers []string, rows [][]string, col, maxWidth int) {
	if maxWidth <= 0 || col < 0 || col >= len(headers) {
		return
	}
	widths := columnWidths(headers, rows, len(headers))
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	excess := total - maxWidth
	if excess <= 0 {
		return
	}
	limit := max(displayWidth(headers[col]), widths[col]-excess)
	for _, row := range rows {
		if col < len(row) && displayWidth(row[col]) > limit {
			row[col] = runewidth.Truncate(row[col], limit, "…")
		}
	}
}
