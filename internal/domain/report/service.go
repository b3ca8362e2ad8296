package report

import "context"

type ReportService interface {
	// GetReport builds the date-range attendance summary
	GetReport(ctx context.Context, filter ReportFilter) (ReportResponse, error)

	// ExportReport renders the same report as an XLSX workbook
	ExportReport(ctx context.Context, filter ReportFilter) (filename string, content []byte, err error)
}
