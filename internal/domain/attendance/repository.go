package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for the attendance ledger.
type AttendanceRepository interface {
	// Create inserts a new row; a duplicate (employee_id, date) insert fails
	// on the unique constraint.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no row exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update rewrites the mutable check-in/check-out fields of an existing row.
	Update(ctx context.Context, att Attendance) (Attendance, error)

	// ListByEmployee returns rows ordered by date descending, with employee
	// display fields joined; filter may narrow to an inclusive date range.
	ListByEmployee(ctx context.Context, employeeID string, filter RangeFilter) ([]Attendance, error)
}
