package reports

import (
	"bytes"
	"fmt"
	"testing"
)

func TestPaginateLines_Distribution(t *testing.T) {
	// Compact geometry: first page holds 3 lines, later pages hold 5.
	const (
		firstTop   = 20.0
		restTop    = 0.0
		threshold  = 40.0
		lineHeight = 10.0
	)

	cases := []struct {
		lines     int
		wantPages int
	}{
		{0, 1},
		{1, 1},
		{3, 1},
		{4, 2},
		{8, 2},
		{9, 3},
	}
	for _, tc := range cases {
		lines := make([]string, tc.lines)
		for i := range lines {
			lines[i] = fmt.Sprintf("line %d", i)
		}

		pages := paginateLines(lines, firstTop, restTop, threshold, lineHeight)
		if len(pages) != tc.wantPages {
			t.Fatalf("%d lines: expected %d pages, got %d", tc.lines, tc.wantPages, len(pages))
		}

		// No line lost, none duplicated, order preserved.
		var flat []string
		for _, p := range pages {
			flat = append(flat, p...)
		}
		if len(flat) != tc.lines {
			t.Fatalf("%d lines: %d lines after pagination", tc.lines, len(flat))
		}
		for i, got := range flat {
			if got != lines[i] {
				t.Fatalf("%d lines: position %d expected %q, got %q", tc.lines, i, lines[i], got)
			}
		}
	}
}

func TestPaginateLines_ZeroLinesOnePage(t *testing.T) {
	pages := paginateLines(nil, pdfFirstPageTop, pdfTopMargin, pdfBottomThreshold, pdfLineHeight)
	if len(pages) != 1 || len(pages[0]) != 0 {
		t.Fatalf("expected a single empty page, got %#v", pages)
	}
}

func TestLayoutReport_EmptyReport(t *testing.T) {
	lay := layoutReport(&ClientReport{
		Client:      ClientInfo{ID: 1, Name: "Idle Client"},
		WorkEntries: []*WorkEntryInfo{},
	})

	if lay.title != "Time Report: Idle Client" {
		t.Fatalf("unexpected title %q", lay.title)
	}
	if len(lay.pages) != 1 {
		t.Fatalf("expected one page, got %d", len(lay.pages))
	}
	if len(lay.footer) != 2 {
		t.Fatalf("expected totals footer, got %#v", lay.footer)
	}
	if lay.footer[1] != "Total Entries: 0" {
		t.Fatalf("unexpected footer %q", lay.footer[1])
	}
}

func TestLayoutReport_ManyEntriesSpillOver(t *testing.T) {
	report := sampleReport(t)
	for len(report.WorkEntries) < 120 {
		report.WorkEntries = append(report.WorkEntries, report.WorkEntries[0])
	}

	lay := layoutReport(report)
	if len(lay.pages) < 2 {
		t.Fatalf("expected 120 entries to spill onto multiple pages, got %d", len(lay.pages))
	}
	total := 0
	for _, p := range lay.pages {
		total += len(p)
	}
	if total != 120 {
		t.Fatalf("expected 120 lines across pages, got %d", total)
	}
}

func TestRenderPDF_ProducesDocument(t *testing.T) {
	data, err := RenderPDF(sampleReport(t))
	if err != nil {
		t.Fatalf("RenderPDF error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestRenderPDF_EmptyReport(t *testing.T) {
	data, err := RenderPDF(&ClientReport{
		Client:      ClientInfo{ID: 1, Name: "Idle Client"},
		WorkEntries: []*WorkEntryInfo{},
	})
	if err != nil {
		t.Fatalf("RenderPDF error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("expected a valid PDF for a report with no entries")
	}
}

func TestRenderPDF_LargeReport(t *testing.T) {
	report := sampleReport(t)
	for len(report.WorkEntries) < 500 {
		report.WorkEntries = append(report.WorkEntries, report.WorkEntries[0])
	}

	data, err := RenderPDF(report)
	if err != nil {
		t.Fatalf("RenderPDF error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("expected a valid PDF for a large report")
	}
}
