package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHearingsToExcel generates an XLSX workbook with the hearings of
// a period plus a status summary row.
func ExportHearingsToExcel(db *gorm.DB, year int, month time.Month, filters HearingFilters) (*bytes.Buffer, error) {
	hearings, err := ListHearingsByPeriod(db, year, month, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Hearings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Docket", "Title", "Party", "Chamber", "Date", "Time", "Location", "Status", "Reports"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, h := range hearings {
		values := []interface{}{
			h.DocketNumber,
			h.Title,
			h.Party,
			h.ChamberLabel(),
			h.HearingDate.Format("2006-01-02"),
			h.HearingTime,
			h.Location,
			h.Status,
			h.NbReports,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	counts := AggregateStatusCounts(hearings)
	summaryRow := len(hearings) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheet, cell, fmt.Sprintf(
		"Total: %d — scheduled %d, rescheduled %d, completed %d, cancelled %d",
		counts.Total(), counts.Scheduled, counts.Rescheduled, counts.Completed, counts.Cancelled,
	))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
