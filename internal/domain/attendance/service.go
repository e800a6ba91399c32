package attendance

import "context"

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// CheckIn records the first check-in of the day for the target employee.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's open record and derives work hours.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetByEmployee lists an employee's records, newest day first.
	GetByEmployee(ctx context.Context, employeeID string, filter RangeFilter) ([]AttendanceResponse, error)
}
