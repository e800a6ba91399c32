package report

import "context"

// ReportRepository runs read-only aggregation queries over the attendance
// ledger joined to the employee directory.
type ReportRepository interface {
	// GetAttendanceSummary groups attendance rows in [start, end] inclusive
	// by employee: per-status counts, total and two-decimal average work
	// hours, with the employee display name joined.
	GetAttendanceSummary(ctx context.Context, filter SummaryFilter) ([]AttendanceSummaryRow, error)
}
