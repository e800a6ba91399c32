package attendance

import (
	"github.com/tausif-btb/cbl-erp/internal/pkg/validator"
)

type CheckInRequest struct {
	// EmployeeID is optional; employee-role callers default to their own
	// record.
	EmployeeID string `json:"employee_id"`
	// Location is [longitude, latitude]; omitted means unknown ([0, 0]).
	Location []float64 `json:"location"`
	Notes    *string   `json:"notes"`
}

func (r *CheckInRequest) Validate() error {
	return validateLocation(r.Location)
}

type CheckOutRequest struct {
	EmployeeID string    `json:"employee_id"`
	Location   []float64 `json:"location"`
}

func (r *CheckOutRequest) Validate() error {
	return validateLocation(r.Location)
}

func validateLocation(loc []float64) error {
	var errs validator.ValidationErrors

	if loc != nil && len(loc) != 2 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must be a [longitude, latitude] pair",
		})
	} else if len(loc) == 2 {
		if loc[0] < -180 || loc[0] > 180 {
			errs = append(errs, validator.ValidationError{
				Field:   "location",
				Message: "longitude must be between -180 and 180",
			})
		}
		if loc[1] < -90 || loc[1] > 90 {
			errs = append(errs, validator.ValidationError{
				Field:   "location",
				Message: "latitude must be between -90 and 90",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RangeFilter is an optional inclusive date range; both bounds or neither.
type RangeFilter struct {
	StartDate *string
	EndDate   *string
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && !validator.IsValidDate(*f.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	if f.EndDate != nil && !validator.IsValidDate(*f.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if (f.StartDate == nil) != (f.EndDate == nil) {
		errs = append(errs, validator.ValidationError{Field: "date_range", Message: "start_date and end_date must be supplied together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   *string   `json:"employee_name,omitempty"`
	EmploymentType *string   `json:"employment_type,omitempty"`
	Date           string    `json:"date"`
	CheckInTime    *string   `json:"check_in_time"`
	CheckInLoc     []float64 `json:"check_in_location"`
	CheckOutTime   *string   `json:"check_out_time"`
	CheckOutLoc    []float64 `json:"check_out_location"`
	Status         string    `json:"status"`
	WorkHours      float64   `json:"work_hours"`
	Notes          *string   `json:"notes,omitempty"`
}
