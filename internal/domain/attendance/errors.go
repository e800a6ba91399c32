package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrNoCheckIn          = errors.New("no check-in record found for today")
	ErrEmployeeIDRequired = errors.New("employee ID is required")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
