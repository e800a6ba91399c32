package payroll

import "context"

// PayrollService defines business logic for payroll operations.
type PayrollService interface {
	// CreatePayroll creates the single record for (employee, month, year) and
	// derives net salary from the components.
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)

	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)

	ListPayrolls(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error)

	GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)

	// UpdateStatus moves the payment lifecycle; "paid" stamps payment date
	// and reference. Net salary is never recomputed here.
	UpdateStatus(ctx context.Context, req UpdatePayrollStatusRequest) (PayrollResponse, error)

	// DeletePayroll removes a record, permitted only while still pending.
	DeletePayroll(ctx context.Context, id string) error
}
