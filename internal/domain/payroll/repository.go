package payroll

import "context"

// PayrollRepository defines data access for the payroll ledger.
type PayrollRepository interface {
	// Create inserts a new row; a duplicate (employee_id, month, year) insert
	// fails on the unique constraint.
	Create(ctx context.Context, p Payroll) (Payroll, error)

	GetByID(ctx context.Context, id string) (Payroll, error)

	// GetByEmployeePeriod returns nil when no row exists for the period.
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*Payroll, error)

	// List returns rows newest-created first with employee display fields
	// joined.
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, error)

	// ListByEmployee orders by year descending, then month descending.
	ListByEmployee(ctx context.Context, employeeID string) ([]Payroll, error)

	UpdateStatus(ctx context.Context, p Payroll) (Payroll, error)

	Delete(ctx context.Context, id string) error
}
