package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/pkg/database"
)

const employeeColumns = `
	id, first_name, last_name, email, phone,
	address_street, address_city, address_state, address_zip_code, address_country,
	date_of_birth, blood_group, employment_type, department, position,
	joining_date, salary,
	emergency_name, emergency_relation, emergency_phone,
	last_appraisal, next_appraisal, is_active, user_id,
	created_at, updated_at`

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.Address.Street, &e.Address.City, &e.Address.State, &e.Address.ZipCode, &e.Address.Country,
		&e.DateOfBirth, &e.BloodGroup, &e.EmploymentType, &e.Department, &e.Position,
		&e.JoiningDate, &e.Salary,
		&e.EmergencyContact.Name, &e.EmergencyContact.Relation, &e.EmergencyContact.Phone,
		&e.LastAppraisal, &e.NextAppraisal, &e.IsActive, &e.UserID,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			first_name, last_name, email, phone,
			address_street, address_city, address_state, address_zip_code, address_country,
			date_of_birth, blood_group, employment_type, department, position,
			joining_date, salary,
			emergency_name, emergency_relation, emergency_phone,
			user_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.Email,
		newEmployee.Phone,
		newEmployee.Address.Street,
		newEmployee.Address.City,
		newEmployee.Address.State,
		newEmployee.Address.ZipCode,
		newEmployee.Address.Country,
		newEmployee.DateOfBirth,
		newEmployee.BloodGroup,
		newEmployee.EmploymentType,
		newEmployee.Department,
		newEmployee.Position,
		newEmployee.JoiningDate,
		newEmployee.Salary,
		newEmployee.EmergencyContact.Name,
		newEmployee.EmergencyContact.Relation,
		newEmployee.EmergencyContact.Phone,
		newEmployee.UserID,
	).Scan(&newEmployee.ID, &newEmployee.IsActive, &newEmployee.CreatedAt, &newEmployee.UpdatedAt)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return e, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeRecordNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	add := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.FirstName != nil {
		add("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		add("last_name", *req.LastName)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.Address != nil {
		add("address_street", req.Address.Street)
		add("address_city", req.Address.City)
		add("address_state", req.Address.State)
		add("address_zip_code", req.Address.ZipCode)
		add("address_country", req.Address.Country)
	}
	if req.DateOfBirth != nil {
		add("date_of_birth", *req.DateOfBirth)
	}
	if req.BloodGroup != nil {
		add("blood_group", *req.BloodGroup)
	}
	if req.EmploymentType != nil {
		add("employment_type", *req.EmploymentType)
	}
	if req.Department != nil {
		add("department", *req.Department)
	}
	if req.Position != nil {
		add("position", *req.Position)
	}
	if req.JoiningDate != nil {
		add("joining_date", *req.JoiningDate)
	}
	if req.Salary != nil {
		add("salary", *req.Salary)
	}
	if req.EmergencyContact != nil {
		add("emergency_name", req.EmergencyContact.Name)
		add("emergency_relation", req.EmergencyContact.Relation)
		add("emergency_phone", req.EmergencyContact.Phone)
	}
	if req.LastAppraisal != nil {
		add("last_appraisal", *req.LastAppraisal)
	}
	if req.NextAppraisal != nil {
		add("next_appraisal", *req.NextAppraisal)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}

	if len(updates) == 0 {
		return nil
	}

	add("updated_at", time.Now())

	args = append(args, id)
	query := "UPDATE employees SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ExistsByID implements employee.EmployeeRepository.
func (r *employeeRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}

	return exists, nil
}

// GetWithBirthdayOn implements employee.EmployeeRepository.
func (r *employeeRepository) GetWithBirthdayOn(ctx context.Context, month int, day int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active
		  AND EXTRACT(MONTH FROM date_of_birth) = $1
		  AND EXTRACT(DAY FROM date_of_birth) = $2`

	rows, err := q.Query(ctx, query, month, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query birthdays: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}

// GetWithAppraisalDue implements employee.EmployeeRepository.
func (r *employeeRepository) GetWithAppraisalDue(ctx context.Context, from, to string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active
		  AND next_appraisal IS NOT NULL
		  AND next_appraisal >= $1
		  AND next_appraisal <= $2`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query due appraisals: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}
