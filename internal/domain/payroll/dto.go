package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/tausif-btb/cbl-erp/internal/pkg/validator"
)

type CreatePayrollRequest struct {
	EmployeeID    string           `json:"employee_id"`
	Month         int              `json:"month"`
	Year          int              `json:"year"`
	BaseSalary    decimal.Decimal  `json:"base_salary"`
	Allowances    *decimal.Decimal `json:"allowances"`
	Deductions    *decimal.Decimal `json:"deductions"`
	Bonus         *decimal.Decimal `json:"bonus"`
	TaxAmount     *decimal.Decimal `json:"tax_amount"`
	PaymentMethod *string          `json:"payment_method"`
	Comments      *string          `json:"comments"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "a valid year is required"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary must not be negative"})
	}
	if r.PaymentMethod != nil && !PaymentMethod(*r.PaymentMethod).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "payment_method must be one of bank_transfer, check, cash"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PayrollFilter narrows List by exact match; nil fields impose no constraint.
type PayrollFilter struct {
	Month         *int
	Year          *int
	PaymentStatus *string
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if f.Year != nil && !validator.IsValidYear(*f.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "a valid year is required"})
	}
	if f.PaymentStatus != nil && !PaymentStatus(*f.PaymentStatus).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of pending, paid, failed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayrollStatusRequest struct {
	ID               string  `json:"-"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentDate      *string `json:"payment_date"`
	PaymentReference *string `json:"payment_reference"`
}

func (r *UpdatePayrollStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !PaymentStatus(r.PaymentStatus).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "payment_status", Message: "payment_status must be one of pending, paid, failed"})
	}
	if r.PaymentDate != nil && !validator.IsValidDate(*r.PaymentDate) {
		errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "payment_date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     *string         `json:"employee_name,omitempty"`
	EmployeeEmail    *string         `json:"employee_email,omitempty"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	Allowances       decimal.Decimal `json:"allowances"`
	Deductions       decimal.Decimal `json:"deductions"`
	Bonus            decimal.Decimal `json:"bonus"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	PaymentStatus    string          `json:"payment_status"`
	PaymentDate      *string         `json:"payment_date,omitempty"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference *string         `json:"payment_reference,omitempty"`
	Comments         *string         `json:"comments,omitempty"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}
