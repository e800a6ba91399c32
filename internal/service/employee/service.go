package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/pkg/database"
	"github.com/tausif-btb/cbl-erp/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	user.UserRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepo,
		UserRepository:     userRepo,
	}
}

const dateLayout = "2006-01-02"

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	var bloodGroup *string
	if e.BloodGroup != nil {
		s := string(*e.BloodGroup)
		bloodGroup = &s
	}

	return employee.EmployeeResponse{
		ID:               e.ID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		Phone:            e.Phone,
		Address:          e.Address,
		DateOfBirth:      e.DateOfBirth.Format(dateLayout),
		BloodGroup:       bloodGroup,
		EmploymentType:   string(e.EmploymentType),
		Department:       e.Department,
		Position:         e.Position,
		JoiningDate:      e.JoiningDate.Format(dateLayout),
		Salary:           e.Salary,
		EmergencyContact: e.EmergencyContact,
		LastAppraisal:    datePtrToString(e.LastAppraisal),
		NextAppraisal:    datePtrToString(e.NextAppraisal),
		IsActive:         e.IsActive,
		UserID:           e.UserID,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	dateOfBirth, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse date_of_birth: %w", err)
	}
	joiningDate, err := time.Parse(dateLayout, req.JoiningDate)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to parse joining_date: %w", err)
	}

	var bloodGroup *employee.BloodGroup
	if req.BloodGroup != nil {
		bg := employee.BloodGroup(*req.BloodGroup)
		bloodGroup = &bg
	}

	newEmployee := employee.Employee{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		DateOfBirth:      dateOfBirth,
		BloodGroup:       bloodGroup,
		EmploymentType:   employee.EmploymentType(req.EmploymentType),
		Department:       req.Department,
		Position:         req.Position,
		JoiningDate:      joiningDate,
		Salary:           req.Salary,
		EmergencyContact: req.EmergencyContact,
		UserID:           req.UserID,
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.EmployeeRepository.Create(txCtx, newEmployee)
		if err != nil {
			return err
		}
		if req.UserID != nil {
			if err := s.UserRepository.SetEmployeeID(txCtx, *req.UserID, &created.ID); err != nil {
				return fmt.Errorf("failed to link account to employee: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService. Employee-role callers may
// only read their own record.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	if role, _ := claims["role"].(string); user.Role(role) == user.RoleEmployee {
		ownID, _ := claims["employee_id"].(string)
		if ownID == "" || ownID != id {
			return employee.EmployeeResponse{}, employee.ErrUnauthorized
		}
	}

	found, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(found), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.EmployeeRepository.Update(ctx, req.ID, req); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService. The linked account's
// back-reference is cleared in the same transaction.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	found, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.EmployeeRepository.Delete(txCtx, id); err != nil {
			return err
		}
		if found.UserID != nil {
			if err := s.UserRepository.SetEmployeeID(txCtx, *found.UserID, nil); err != nil {
				return fmt.Errorf("failed to unlink account from employee: %w", err)
			}
		}
		return nil
	})
}
