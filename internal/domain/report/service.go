package report

import "context"

// ReportService defines the reporting surface.
type ReportService interface {
	AttendanceSummary(ctx context.Context, filter SummaryFilter) ([]AttendanceSummaryRow, error)

	// ExportAttendanceSummary renders the same aggregation as an XLSX
	// workbook and returns the file bytes.
	ExportAttendanceSummary(ctx context.Context, filter SummaryFilter) ([]byte, error)
}
