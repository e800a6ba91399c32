package employee

import "context"

// EmployeeRepository defines data access for the employee directory. The
// employees table carries a UNIQUE constraint on email; Create surfaces the
// constraint violation so the service can report a duplicate.
type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)

	// Alert-job scans over the directory (birthday/appraisal reminders).
	GetWithBirthdayOn(ctx context.Context, month int, day int) ([]Employee, error)
	GetWithAppraisalDue(ctx context.Context, from, to string) ([]Employee, error)
}
