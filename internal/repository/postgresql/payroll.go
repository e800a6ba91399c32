package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tausif-btb/cbl-erp/internal/domain/payroll"
	"github.com/tausif-btb/cbl-erp/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.month, p.year,
	p.base_salary, p.allowances, p.deductions, p.bonus, p.tax_amount, p.net_salary,
	p.payment_status, p.payment_date, p.payment_method, p.payment_reference,
	p.comments, p.created_at, p.updated_at
`

func scanPayroll(row pgx.Row, withEmployee bool) (payroll.Payroll, error) {
	var rec payroll.Payroll
	dest := []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Year,
		&rec.BaseSalary, &rec.Allowances, &rec.Deductions, &rec.Bonus, &rec.TaxAmount, &rec.NetSalary,
		&rec.PaymentStatus, &rec.PaymentDate, &rec.PaymentMethod, &rec.PaymentReference,
		&rec.Comments, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &rec.EmployeeName, &rec.EmployeeEmail)
	}
	if err := row.Scan(dest...); err != nil {
		return payroll.Payroll{}, err
	}
	return rec, nil
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepository) Create(ctx context.Context, rec payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			employee_id, month, year,
			base_salary, allowances, deductions, bonus, tax_amount, net_salary,
			payment_status, payment_method, comments
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.Month,
		rec.Year,
		rec.BaseSalary,
		rec.Allowances,
		rec.Deductions,
		rec.Bonus,
		rec.TaxAmount,
		rec.NetSalary,
		rec.PaymentStatus,
		rec.PaymentMethod,
		rec.Comments,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return rec, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   e.email AS employee_email
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`, payrollColumns)

	rec, err := scanPayroll(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return rec, nil
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payrolls p
		WHERE p.employee_id = $1
		  AND p.month = $2
		  AND p.year = $3
		LIMIT 1
	`, payrollColumns)

	rec, err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // period not generated yet
		}
		return nil, fmt.Errorf("failed to get payroll by period: %w", err)
	}

	return &rec, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil {
		where += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		where += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.PaymentStatus != nil {
		where += fmt.Sprintf(" AND p.payment_status = $%d", argIdx)
		args = append(args, *filter.PaymentStatus)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   e.email AS employee_email
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.created_at DESC
	`, payrollColumns, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		rec, err := scanPayroll(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll rows: %w", err)
	}

	return payrolls, nil
}

// ListByEmployee implements payroll.PayrollRepository.
func (r *payrollRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   e.email AS employee_email
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1
		ORDER BY p.year DESC, p.month DESC
	`, payrollColumns)

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payrolls by employee: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		rec, err := scanPayroll(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll rows: %w", err)
	}

	return payrolls, nil
}

// UpdateStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateStatus(ctx context.Context, rec payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET payment_status = $1,
			payment_date = $2,
			payment_reference = $3,
			updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.PaymentStatus,
		rec.PaymentDate,
		rec.PaymentReference,
		rec.ID,
	).Scan(&rec.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	return rec, nil
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, "DELETE FROM payrolls WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}

	if result.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}
