package reports

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Export is a finished download: content plus the headers the HTTP layer needs.
type Export struct {
	Data        []byte
	Filename    string
	ContentType string
}

var exportContentTypes = map[Format]string{
	FormatCSV:  "text/csv",
	FormatPDF:  "application/pdf",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ExportClientReport builds the report and renders it in the requested byte
// format. JSON is not an export format; callers serve the ClientReport from
// BuildClientReport directly.
func ExportClientReport(ctx context.Context, store Store, userEmail string, rawClientId string, format Format) (*Export, error) {
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported export format %q", ErrRender, format)
	}

	report, err := BuildClientReport(ctx, store, userEmail, rawClientId)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = RenderCSV(report)
	case FormatPDF:
		data, err = RenderPDF(report)
	case FormatXLSX:
		data, err = RenderXLSX(report)
	}
	if err != nil {
		return nil, err
	}

	return &Export{
		Data:        data,
		Filename:    fmt.Sprintf("%s-report.%s", utils.SanitizeFilename(report.Client.Name), format),
		ContentType: contentType,
	}, nil
}
