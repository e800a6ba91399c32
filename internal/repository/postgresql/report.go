package postgresql

import (
	"context"
	"fmt"

	"github.com/tausif-btb/cbl-erp/internal/domain/report"
	"github.com/tausif-btb/cbl-erp/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// GetAttendanceSummary implements report.ReportRepository.
func (r *reportRepository) GetAttendanceSummary(ctx context.Context, filter report.SummaryFilter) ([]report.AttendanceSummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.employee_id,
			   COALESCE(e.first_name || ' ' || e.last_name, '') AS employee_name,
			   COUNT(*) FILTER (WHERE a.status = 'present')    AS present,
			   COUNT(*) FILTER (WHERE a.status = 'absent')     AS absent,
			   COUNT(*) FILTER (WHERE a.status = 'half-day')   AS half_day,
			   COUNT(*) FILTER (WHERE a.status = 'leave')      AS leave,
			   COUNT(*) FILTER (WHERE a.status = 'wfh')        AS wfh,
			   COALESCE(SUM(a.work_hours), 0)                  AS total_work_hours,
			   COALESCE(ROUND(AVG(a.work_hours)::numeric, 2), 0) AS average_work_hours
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1
		  AND a.date <= $2
		GROUP BY a.employee_id, e.first_name, e.last_name
		ORDER BY employee_name
	`

	rows, err := q.Query(ctx, query, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance summary: %w", err)
	}
	defer rows.Close()

	var summary []report.AttendanceSummaryRow
	for rows.Next() {
		var row report.AttendanceSummaryRow
		err := rows.Scan(
			&row.EmployeeID,
			&row.EmployeeName,
			&row.Present,
			&row.Absent,
			&row.HalfDay,
			&row.Leave,
			&row.WFH,
			&row.TotalWorkHours,
			&row.AverageWorkHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summary rows: %w", err)
	}

	return summary, nil
}
