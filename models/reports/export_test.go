package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/timesheet_backend/models"
	"github.com/xuri/excelize/v2"
)

func TestExportClientReport_Formats(t *testing.T) {
	store := acmeStore()

	cases := []struct {
		format      Format
		contentType string
		prefix      []byte
	}{
		{FormatCSV, "text/csv", []byte("Client: Acme Corp")},
		{FormatPDF, "application/pdf", []byte("%PDF-")},
		{FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("PK")},
	}
	for _, tc := range cases {
		export, err := ExportClientReport(context.Background(), store, "a@example.com", "1", tc.format)
		if err != nil {
			t.Fatalf("%s: ExportClientReport error: %v", tc.format, err)
		}
		if export.ContentType != tc.contentType {
			t.Fatalf("%s: expected content type %q, got %q", tc.format, tc.contentType, export.ContentType)
		}
		if export.Filename != "Acme Corp-report."+string(tc.format) {
			t.Fatalf("%s: unexpected filename %q", tc.format, export.Filename)
		}
		if !bytes.HasPrefix(export.Data, tc.prefix) {
			t.Fatalf("%s: output missing expected prefix %q", tc.format, tc.prefix)
		}
	}
}

func TestExportClientReport_UnsupportedFormat(t *testing.T) {
	store := acmeStore()

	_, err := ExportClientReport(context.Background(), store, "a@example.com", "1", FormatJSON)
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender for json export, got %v", err)
	}
	if store.getCalls != 0 {
		t.Fatal("unsupported format must be rejected before the store is touched")
	}
}

func TestExportClientReport_ErrorsPassThrough(t *testing.T) {
	store := acmeStore()

	if _, err := ExportClientReport(context.Background(), store, "a@example.com", "oops", FormatCSV); !errors.Is(err, ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
	if _, err := ExportClientReport(context.Background(), store, "a@example.com", "999", FormatCSV); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestExportClientReport_FilenameSanitized(t *testing.T) {
	store := newFakeStore()
	store.addClient("a@example.com", &models.Client{ID: 1, UserEmail: "a@example.com", Name: `Acme/Co:r\p`})

	export, err := ExportClientReport(context.Background(), store, "a@example.com", "1", FormatCSV)
	if err != nil {
		t.Fatalf("ExportClientReport error: %v", err)
	}
	if bytes.ContainsAny([]byte(export.Filename), `/\:`) {
		t.Fatalf("filename not sanitized: %q", export.Filename)
	}
}

func TestRenderXLSX_CellContents(t *testing.T) {
	data, err := RenderXLSX(sampleReport(t))
	if err != nil {
		t.Fatalf("RenderXLSX error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook did not open: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A1")
	if err != nil {
		t.Fatalf("GetCellValue error: %v", err)
	}
	if got != "Client: Acme Corp" {
		t.Fatalf("A1: expected client preamble, got %q", got)
	}
	got, _ = f.GetCellValue("Sheet1", "A3")
	if got != "2025-03-01" {
		t.Fatalf("A3: expected first entry date, got %q", got)
	}
	got, _ = f.GetCellValue("Sheet1", "B7")
	if got != "19" {
		t.Fatalf("B7: expected total hours 19, got %q", got)
	}
}
