package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, role, employee_id, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, role, employee_id, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// SetEmployeeID implements user.UserRepository.
func (r *userRepository) SetEmployeeID(ctx context.Context, userID string, employeeID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET employee_id = $1, updated_at = NOW() WHERE id = $2`

	commandTag, err := q.Exec(ctx, query, employeeID, userID)
	if err != nil {
		return fmt.Errorf("failed to set user employee reference: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// GetHREmails implements user.UserRepository.
func (r *userRepository) GetHREmails(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT email
		FROM users
		WHERE role IN ('hr', 'admin') AND is_active
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query HR emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan HR email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read HR email rows: %w", err)
	}

	return emails, nil
}
