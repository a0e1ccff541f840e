package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// RenderCSV serializes a report into a complete, self-contained CSV document.
// Layout: a "Client: <name>" line, a blank line, the column header, one row per
// entry (already in date ASC, id ASC order), a blank line, and totals rows.
// encoding/csv handles RFC 4180 quoting; an absent description is an empty
// field, never the text "null". Same input, same bytes.
func RenderCSV(report *ClientReport) ([]byte, error) {
	records := [][]string{
		{"Client: " + report.Client.Name},
		{},
		{"Date", "Hours", "Description", "Created At", "Updated At"},
	}
	for _, e := range report.WorkEntries {
		records = append(records, []string{
			e.Date,
			e.Hours.String(),
			e.Description,
			e.CreatedAt,
			e.UpdatedAt,
		})
	}
	records = append(records,
		[]string{},
		[]string{"Total Hours", report.TotalHours.String()},
		[]string{"Total Entries", strconv.Itoa(report.EntryCount)},
	)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		// No partial output: the buffer is dropped with the error.
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
