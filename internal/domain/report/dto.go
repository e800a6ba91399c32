package report

import (
	"github.com/tausif-btb/cbl-erp/internal/pkg/validator"
)

// SummaryFilter is the inclusive date range for the attendance summary; both
// bounds are required.
type SummaryFilter struct {
	StartDate string
	EndDate   string
}

func (f *SummaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.StartDate) || validator.IsEmpty(f.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "date_range", Message: "start_date and end_date are required"})
	} else {
		if !validator.IsValidDate(f.StartDate) {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
		}
		if !validator.IsValidDate(f.EndDate) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceSummaryRow is one aggregate per employee having at least one
// attendance record in the range.
type AttendanceSummaryRow struct {
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	Present          int     `json:"present"`
	Absent           int     `json:"absent"`
	HalfDay          int     `json:"half_day"`
	Leave            int     `json:"leave"`
	WFH              int     `json:"wfh"`
	TotalWorkHours   float64 `json:"total_work_hours"`
	AverageWorkHours float64 `json:"average_work_hours"`
}
