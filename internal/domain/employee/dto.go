package employee

import (
	"github.com/shopspring/decimal"

	"github.com/tausif-btb/cbl-erp/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Address          Address          `json:"address"`
	DateOfBirth      string           `json:"date_of_birth"`
	BloodGroup       *string          `json:"blood_group"`
	EmploymentType   string           `json:"employment_type"`
	Department       string           `json:"department"`
	Position         string           `json:"position"`
	JoiningDate      string           `json:"joining_date"`
	Salary           decimal.Decimal  `json:"salary"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	UserID           *string          `json:"user_id"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if !validator.IsValidPhone(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "a valid phone number is required"})
	}
	if !validator.IsValidDate(r.DateOfBirth) {
		errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "date_of_birth must be YYYY-MM-DD"})
	}
	if r.BloodGroup != nil && !BloodGroup(*r.BloodGroup).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "blood_group", Message: "invalid blood group"})
	}
	if !EmploymentType(r.EmploymentType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "employment_type must be one of full-time, part-time, wfh, office"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	}
	if !validator.IsValidDate(r.JoiningDate) {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be YYYY-MM-DD"})
	}
	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest carries a partial update; nil fields are left as-is.
type UpdateEmployeeRequest struct {
	ID               string            `json:"-"`
	FirstName        *string           `json:"first_name"`
	LastName         *string           `json:"last_name"`
	Email            *string           `json:"email"`
	Phone            *string           `json:"phone"`
	Address          *Address          `json:"address"`
	DateOfBirth      *string           `json:"date_of_birth"`
	BloodGroup       *string           `json:"blood_group"`
	EmploymentType   *string           `json:"employment_type"`
	Department       *string           `json:"department"`
	Position         *string           `json:"position"`
	JoiningDate      *string           `json:"joining_date"`
	Salary           *decimal.Decimal  `json:"salary"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
	LastAppraisal    *string           `json:"last_appraisal"`
	NextAppraisal    *string           `json:"next_appraisal"`
	IsActive         *bool             `json:"is_active"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if r.Phone != nil && !validator.IsValidPhone(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "a valid phone number is required"})
	}
	if r.BloodGroup != nil && !BloodGroup(*r.BloodGroup).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "blood_group", Message: "invalid blood group"})
	}
	if r.EmploymentType != nil && !EmploymentType(*r.EmploymentType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "employment_type must be one of full-time, part-time, wfh, office"})
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must not be negative"})
	}
	for field, v := range map[string]*string{
		"date_of_birth":  r.DateOfBirth,
		"joining_date":   r.JoiningDate,
		"last_appraisal": r.LastAppraisal,
		"next_appraisal": r.NextAppraisal,
	} {
		if v != nil && !validator.IsValidDate(*v) {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string           `json:"id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Address          Address          `json:"address"`
	DateOfBirth      string           `json:"date_of_birth"`
	BloodGroup       *string          `json:"blood_group,omitempty"`
	EmploymentType   string           `json:"employment_type"`
	Department       string           `json:"department"`
	Position         string           `json:"position"`
	JoiningDate      string           `json:"joining_date"`
	Salary           decimal.Decimal  `json:"salary"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	LastAppraisal    *string          `json:"last_appraisal,omitempty"`
	NextAppraisal    *string          `json:"next_appraisal,omitempty"`
	IsActive         bool             `json:"is_active"`
	UserID           *string          `json:"user_id,omitempty"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}
