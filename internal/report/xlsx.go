package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/housekeep/internal/model"
)

// SheetName is the worksheet holding the plan in exported workbooks.
const SheetName = "Plan"

const (
	xlsxHeaderRow = 3
	xlsxFirstRow  = xlsxHeaderRow + 1
)

// WriteWorkbook saves the plan as an .xlsx file at path: the hotel name in
// A1, the table from row 3 and a totals row below it.
func WriteWorkbook(path, hotel string, plan []model.StaffedDay, sum model.Summary) error {
	wb := excelize.NewFile()
	defer func() {
		// Best-effort close; SaveAs already flushed the file.
		_ = wb.Close()
	}()

	if err := wb.SetSheetName(wb.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := fillWorkbook(wb, hotel, plan, sum); err != nil {
		return err
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func fillWorkbook(wb *excelize.File, hotel string, plan []model.StaffedDay, sum model.Summary) error {
	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := wb.SetCellValue(SheetName, "A1", hotel); err != nil {
		return err
	}
	if err := wb.SetCellStyle(SheetName, "A1", "A1", bold); err != nil {
		return err
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := setRow(wb, xlsxHeaderRow, header); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, xlsxHeaderRow)
	last, _ := excelize.CoordinatesToCellName(len(Headers), xlsxHeaderRow)
	if err := wb.SetCellStyle(SheetName, first, last, bold); err != nil {
		return err
	}

	row := xlsxFirstRow
	for _, day := range plan {
		values := []any{
			day.Row.Date,
			day.Row.DayLabel,
			day.Row.Arrivals,
			day.Row.Departures,
			day.Row.Stayover,
			day.Result.WorkloadMinutes,
			day.Result.StaffCount,
		}
		if err := setRow(wb, row, values); err != nil {
			return err
		}
		row++
	}

	if len(plan) > 0 {
		totals := []any{"Total", "", "", "", "", sum.TotalWorkload, sum.TotalStaffDays}
		if err := setRow(wb, row+1, totals); err != nil {
			return err
		}
		first, _ := excelize.CoordinatesToCellName(1, row+1)
		last, _ := excelize.CoordinatesToCellName(len(totals), row+1)
		if err := wb.SetCellStyle(SheetName, first, last, bold); err != nil {
			return err
		}
	}

	if err := wb.SetColWidth(SheetName, "A", "A", 11); err != nil {
		return err
	}
	return wb.SetColWidth(SheetName, "B", "B", 16)
}

func setRow(wb *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := wb.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
