package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX writes the report table into a single-sheet workbook.
// Same column layout as the CSV export; hours land as numeric cells.
func RenderXLSX(report *ClientReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	// Add headers
	f.SetCellValue(sheet, "A1", "Client: "+report.Client.Name)
	f.SetCellValue(sheet, "A2", "Date")
	f.SetCellValue(sheet, "B2", "Hours")
	f.SetCellValue(sheet, "C2", "Description")
	f.SetCellValue(sheet, "D2", "Created At")
	f.SetCellValue(sheet, "E2", "Updated At")

	// Add data
	for i, e := range report.WorkEntries {
		row := i + 3
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), e.Date)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), e.Hours.InexactFloat64())
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), e.Description)
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), e.CreatedAt)
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), e.UpdatedAt)
	}

	totalsRow := len(report.WorkEntries) + 4
	f.SetCellValue(sheet, "A"+fmt.Sprint(totalsRow), "Total Hours")
	f.SetCellValue(sheet, "B"+fmt.Sprint(totalsRow), report.TotalHours.InexactFloat64())
	f.SetCellValue(sheet, "A"+fmt.Sprint(totalsRow+1), "Total Entries")
	f.SetCellValue(sheet, "B"+fmt.Sprint(totalsRow+1), report.EntryCount)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
