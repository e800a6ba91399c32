package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// SetEmployeeID maintains the user→employee back-reference; employeeID nil
	// clears it. Used by the employee directory when linking or deleting.
	SetEmployeeID(ctx context.Context, userID string, employeeID *string) error

	// GetHREmails returns the inbox list for HR alert mails.
	GetHREmails(ctx context.Context) ([]string, error)
}
