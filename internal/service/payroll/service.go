package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/domain/payroll"
	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/pkg/clock"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	employee.EmployeeRepository
	clock clock.Clock
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:  payrollRepo,
		EmployeeRepository: employeeRepo,
		clock:              clk,
	}
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func toPayrollResponse(p payroll.Payroll) payroll.PayrollResponse {
	return payroll.PayrollResponse{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		EmployeeName:     p.EmployeeName,
		EmployeeEmail:    p.EmployeeEmail,
		Month:            p.Month,
		Year:             p.Year,
		BaseSalary:       p.BaseSalary,
		Allowances:       p.Allowances,
		Deductions:       p.Deductions,
		Bonus:            p.Bonus,
		TaxAmount:        p.TaxAmount,
		NetSalary:        p.NetSalary,
		PaymentStatus:    string(p.PaymentStatus),
		PaymentDate:      datePtrToString(p.PaymentDate),
		PaymentMethod:    string(p.PaymentMethod),
		PaymentReference: p.PaymentReference,
		Comments:         p.Comments,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// CreatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	exists, err := s.EmployeeRepository.ExistsByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to check employee existence: %w", err)
	}
	if !exists {
		return payroll.PayrollResponse{}, employee.ErrEmployeeNotFound
	}

	existing, err := s.PayrollRepository.GetByEmployeePeriod(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if existing != nil {
		return payroll.PayrollResponse{}, payroll.ErrPayrollExists
	}

	allowances := orZero(req.Allowances)
	deductions := orZero(req.Deductions)
	bonus := orZero(req.Bonus)
	tax := orZero(req.TaxAmount)

	method := payroll.PaymentMethodBankTransfer
	if req.PaymentMethod != nil {
		method = payroll.PaymentMethod(*req.PaymentMethod)
	}

	created, err := s.PayrollRepository.Create(ctx, payroll.Payroll{
		EmployeeID:    req.EmployeeID,
		Month:         req.Month,
		Year:          req.Year,
		BaseSalary:    req.BaseSalary,
		Allowances:    allowances,
		Deductions:    deductions,
		Bonus:         bonus,
		TaxAmount:     tax,
		NetSalary:     payroll.NetSalary(req.BaseSalary, allowances, bonus, deductions, tax),
		PaymentStatus: payroll.PaymentStatusPending,
		PaymentMethod: method,
		Comments:      req.Comments,
	})
	if err != nil {
		// Loser of a concurrent create for the same period hits the unique
		// constraint on (employee_id, month, year).
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayrollResponse{}, payroll.ErrPayrollExists
		}
		return payroll.PayrollResponse{}, err
	}

	return toPayrollResponse(created), nil
}

// GetPayroll implements payroll.PayrollService. Employee-role callers may only
// read their own records.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	found, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if role, _ := claims["role"].(string); user.Role(role) == user.RoleEmployee {
		ownID, _ := claims["employee_id"].(string)
		if ownID == "" || ownID != found.EmployeeID {
			return payroll.PayrollResponse{}, user.ErrAccessDenied
		}
	}

	return toPayrollResponse(found), nil
}

// ListPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.PayrollRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, p := range records {
		responses = append(responses, toPayrollResponse(p))
	}
	return responses, nil
}

// GetByEmployee implements payroll.PayrollService. Employee-role callers may
// only read their own records.
func (s *PayrollServiceImpl) GetByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if role, _ := claims["role"].(string); user.Role(role) == user.RoleEmployee {
		ownID, _ := claims["employee_id"].(string)
		if ownID == "" || ownID != employeeID {
			return nil, user.ErrAccessDenied
		}
	}

	exists, err := s.EmployeeRepository.ExistsByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check employee existence: %w", err)
	}
	if !exists {
		return nil, employee.ErrEmployeeNotFound
	}

	records, err := s.PayrollRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, p := range records {
		responses = append(responses, toPayrollResponse(p))
	}
	return responses, nil
}

// UpdateStatus implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, req payroll.UpdatePayrollStatusRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	found, err := s.PayrollRepository.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	found.PaymentStatus = payroll.PaymentStatus(req.PaymentStatus)

	// Payment date and reference are stamped only on a paid transition.
	if found.PaymentStatus == payroll.PaymentStatusPaid {
		if req.PaymentDate != nil {
			d, err := time.Parse("2006-01-02", *req.PaymentDate)
			if err != nil {
				return payroll.PayrollResponse{}, fmt.Errorf("failed to parse payment_date: %w", err)
			}
			found.PaymentDate = &d
		} else {
			now := s.clock.Now().UTC()
			found.PaymentDate = &now
		}
		if req.PaymentReference != nil {
			found.PaymentReference = req.PaymentReference
		}
	}

	updated, err := s.PayrollRepository.UpdateStatus(ctx, found)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return toPayrollResponse(updated), nil
}

// DeletePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayroll(ctx context.Context, id string) error {
	found, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if found.PaymentStatus != payroll.PaymentStatusPending {
		return payroll.ErrCannotDeleteProcessed
	}

	return s.PayrollRepository.Delete(ctx, id)
}
