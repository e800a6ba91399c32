package attendance

import "time"

// Attendance is one ledger row per (employee, calendar day). The attendances
// table carries a UNIQUE constraint on (employee_id, date); that constraint,
// not application locking, is what rejects the loser of a concurrent
// first-check-in race.
type Attendance struct {
	ID         string
	EmployeeID string
	// Date is the calendar day, UTC midnight.
	Date time.Time
	// Check-in/out geolocation is [longitude, latitude]; [0, 0] is the
	// "unknown location" sentinel inherited from the data model, not a real
	// coordinate.
	CheckInTime       *time.Time
	CheckInLongitude  float64
	CheckInLatitude   float64
	CheckOutTime      *time.Time
	CheckOutLongitude float64
	CheckOutLatitude  float64
	Status            Status
	// WorkHours is derived at checkout from the two timestamps, rounded to
	// two decimals; it is never accepted from a caller.
	WorkHours float64
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined employee display fields
	EmployeeName   *string
	EmploymentType *string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
	StatusLeave   Status = "leave"
	StatusWFH     Status = "wfh"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave, StatusWFH:
		return true
	}
	return false
}
