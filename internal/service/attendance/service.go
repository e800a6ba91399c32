package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tausif-btb/cbl-erp/internal/domain/attendance"
	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/pkg/clock"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	clock clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		clock:                clk,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func splitLocation(loc []float64) (longitude, latitude float64) {
	if len(loc) == 2 {
		return loc[0], loc[1]
	}
	return 0, 0
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:             att.ID,
		EmployeeID:     att.EmployeeID,
		EmployeeName:   att.EmployeeName,
		EmploymentType: att.EmploymentType,
		Date:           att.Date.Format("2006-01-02"),
		CheckInTime:    timePtrToString(att.CheckInTime),
		CheckInLoc:     []float64{att.CheckInLongitude, att.CheckInLatitude},
		CheckOutTime:   timePtrToString(att.CheckOutTime),
		CheckOutLoc:    []float64{att.CheckOutLongitude, att.CheckOutLatitude},
		Status:         string(att.Status),
		WorkHours:      att.WorkHours,
		Notes:          att.Notes,
	}
}

// resolveTargetEmployee decides whose ledger an operation acts on. An explicit
// employee_id wins; employee-role callers fall back to their own record; other
// roles must name a target.
func (a *AttendanceServiceImpl) resolveTargetEmployee(ctx context.Context, requested string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, _ := claims["role"].(string)

	if requested != "" {
		if user.Role(role) == user.RoleEmployee {
			ownID, _ := claims["employee_id"].(string)
			if ownID != requested {
				return "", employee.ErrUnauthorized
			}
		}
		exists, err := a.EmployeeRepository.ExistsByID(ctx, requested)
		if err != nil {
			return "", fmt.Errorf("failed to check employee existence: %w", err)
		}
		if !exists {
			return "", employee.ErrEmployeeNotFound
		}
		return requested, nil
	}

	if user.Role(role) != user.RoleEmployee {
		return "", attendance.ErrEmployeeIDRequired
	}

	if ownID, _ := claims["employee_id"].(string); ownID != "" {
		return ownID, nil
	}

	// Older tokens may predate the employee link; fall back to the account.
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", attendance.ErrEmployeeIDRequired
	}
	own, err := a.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return own.ID, nil
}

func (a *AttendanceServiceImpl) today() time.Time {
	now := a.clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := a.resolveTargetEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now().UTC()
	today := a.today()
	longitude, latitude := splitLocation(req.Location)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing != nil {
		if existing.CheckInTime != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		// Day row exists without a check-in (status set ahead of time); fill
		// in the check-in fields on that row.
		existing.CheckInTime = &now
		existing.CheckInLongitude = longitude
		existing.CheckInLatitude = latitude
		existing.Status = attendance.StatusPresent
		if req.Notes != nil {
			existing.Notes = req.Notes
		}

		updated, err := a.AttendanceRepository.Update(ctx, *existing)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return toAttendanceResponse(updated), nil
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:       employeeID,
		Date:             today,
		CheckInTime:      &now,
		CheckInLongitude: longitude,
		CheckInLatitude:  latitude,
		Status:           attendance.StatusPresent,
		Notes:            req.Notes,
	})
	if err != nil {
		// The loser of a concurrent first-check-in race hits the unique
		// constraint on (employee_id, date).
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := a.resolveTargetEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now().UTC()
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.today())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing == nil || existing.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
	}
	if existing.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	longitude, latitude := splitLocation(req.Location)
	existing.CheckOutTime = &now
	existing.CheckOutLongitude = longitude
	existing.CheckOutLatitude = latitude
	existing.WorkHours = roundHours(now.Sub(*existing.CheckInTime).Hours())

	updated, err := a.AttendanceRepository.Update(ctx, *existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(updated), nil
}

// GetByEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetByEmployee(ctx context.Context, employeeID string, filter attendance.RangeFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	target, err := a.resolveTargetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, target, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, toAttendanceResponse(att))
	}
	return responses, nil
}
