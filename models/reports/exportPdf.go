package reports

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait geometry, in millimeters.
const (
	pdfPageWidth  = 210.0
	pdfPageHeight = 297.0

	pdfLeftMargin   = 15.0
	pdfTopMargin    = 20.0
	pdfBottomMargin = 20.0

	pdfLineHeight  = 7.0
	pdfTitleHeight = 12.0
	pdfHeaderGap   = 8.0

	// First page entries start below the title block.
	pdfFirstPageTop = pdfTopMargin + pdfTitleHeight + pdfHeaderGap

	// A line starting past this would run into the bottom margin, so the
	// cursor moves to a fresh page first.
	pdfBottomThreshold = pdfPageHeight - pdfBottomMargin - pdfLineHeight
)

type pdfLayout struct {
	title  string
	pages  [][]string
	footer []string
}

// paginateLines distributes lines over pages by simulating a vertical cursor:
// before each line, a cursor past the threshold starts a new page at restTop.
// Lines are never split or dropped. Zero lines still yield one (empty) page so
// a header-and-totals-only document renders.
func paginateLines(lines []string, firstTop, restTop, threshold, lineHeight float64) [][]string {
	pages := [][]string{{}}
	cursor := firstTop
	for _, line := range lines {
		if cursor > threshold {
			pages = append(pages, []string{})
			cursor = restTop
		}
		last := len(pages) - 1
		pages[last] = append(pages[last], line)
		cursor += lineHeight
	}
	return pages
}

func entryLine(e *WorkEntryInfo) string {
	return fmt.Sprintf("%s    %s h    %s", e.Date, e.Hours.String(), e.Description)
}

// layoutReport computes the full text content and page breaks without touching
// the PDF engine, so layout is deterministic and unit-testable on its own.
func layoutReport(report *ClientReport) pdfLayout {
	lines := make([]string, 0, len(report.WorkEntries))
	for _, e := range report.WorkEntries {
		lines = append(lines, entryLine(e))
	}
	return pdfLayout{
		title: "Time Report: " + report.Client.Name,
		pages: paginateLines(lines, pdfFirstPageTop, pdfTopMargin, pdfBottomThreshold, pdfLineHeight),
		footer: []string{
			"Total Hours: " + report.TotalHours.String(),
			"Total Entries: " + strconv.Itoa(report.EntryCount),
		},
	}
}

// RenderPDF serializes a precomputed layout through gofpdf. Entries must
// already be in stable order (BuildClientReport guarantees it).
func RenderPDF(report *ClientReport) ([]byte, error) {
	lay := layoutReport(report)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	contentWidth := pdfPageWidth - 2*pdfLeftMargin

	y := pdfTopMargin
	for i, page := range lay.pages {
		pdf.AddPage()
		y = pdfTopMargin
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 18)
			pdf.SetXY(pdfLeftMargin, y)
			pdf.CellFormat(contentWidth, pdfTitleHeight, tr(lay.title), "", 0, "C", false, 0, "")
			y = pdfFirstPageTop
		}
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range page {
			pdf.SetXY(pdfLeftMargin, y)
			pdf.CellFormat(contentWidth, pdfLineHeight, tr(line), "", 0, "L", false, 0, "")
			y += pdfLineHeight
		}
	}

	// Totals section, pushed to a fresh page if it would cross the threshold.
	y += pdfLineHeight
	if y+float64(len(lay.footer)-1)*pdfLineHeight > pdfBottomThreshold {
		pdf.AddPage()
		y = pdfTopMargin
	}
	pdf.SetFont("Helvetica", "B", 12)
	for _, line := range lay.footer {
		pdf.SetXY(pdfLeftMargin, y)
		pdf.CellFormat(contentWidth, pdfLineHeight, tr(line), "", 0, "L", false, 0, "")
		y += pdfLineHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		// No partial output: the buffer is dropped with the error.
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
