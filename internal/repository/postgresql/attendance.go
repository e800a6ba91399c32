package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tausif-btb/cbl-erp/internal/domain/attendance"
	"github.com/tausif-btb/cbl-erp/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date,
			check_in_time, check_in_longitude, check_in_latitude,
			status, work_hours, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.CheckInTime,
		att.CheckInLongitude,
		att.CheckInLatitude,
		att.Status,
		att.WorkHours,
		att.Notes,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date,
			   check_in_time, check_in_longitude, check_in_latitude,
			   check_out_time, check_out_longitude, check_out_latitude,
			   status, work_hours, notes,
			   created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.CheckInTime, &att.CheckInLongitude, &att.CheckInLatitude,
		&att.CheckOutTime, &att.CheckOutLongitude, &att.CheckOutLatitude,
		&att.Status, &att.WorkHours, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no record for that day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in_time = $1,
			check_in_longitude = $2,
			check_in_latitude = $3,
			check_out_time = $4,
			check_out_longitude = $5,
			check_out_latitude = $6,
			status = $7,
			work_hours = $8,
			notes = $9,
			updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		att.CheckInTime,
		att.CheckInLongitude,
		att.CheckInLatitude,
		att.CheckOutTime,
		att.CheckOutLongitude,
		att.CheckOutLatitude,
		att.Status,
		att.WorkHours,
		att.Notes,
		att.ID,
	).Scan(&att.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return att, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.RangeFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.date,
			   a.check_in_time, a.check_in_longitude, a.check_in_latitude,
			   a.check_out_time, a.check_out_longitude, a.check_out_latitude,
			   a.status, a.work_hours, a.notes,
			   a.created_at, a.updated_at,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   e.employment_type
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date,
			&att.CheckInTime, &att.CheckInLongitude, &att.CheckInLatitude,
			&att.CheckOutTime, &att.CheckOutLongitude, &att.CheckOutLatitude,
			&att.Status, &att.WorkHours, &att.Notes,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName, &att.EmploymentType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return attendances, nil
}
