package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tausif-btb/cbl-erp/internal/domain/report"
)

type ReportServiceImpl struct {
	report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{ReportRepository: reportRepo}
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, filter report.SummaryFilter) ([]report.AttendanceSummaryRow, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.ReportRepository.GetAttendanceSummary(ctx, filter)
}

// ExportAttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendanceSummary(ctx context.Context, filter report.SummaryFilter) ([]byte, error) {
	rows, err := s.AttendanceSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Attendance Summary"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []string{
		"Employee ID", "Employee Name", "Present", "Absent",
		"Half Day", "Leave", "WFH", "Total Work Hours", "Average Work Hours",
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to set header row: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "I1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	widths := map[string]float64{
		"A": 38, "B": 30, "C": 10, "D": 10, "E": 10, "F": 10, "G": 10, "H": 18, "I": 20,
	}
	for col, width := range widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2) // row 1 is the header
		data := []interface{}{
			row.EmployeeID,
			row.EmployeeName,
			row.Present,
			row.Absent,
			row.HalfDay,
			row.Leave,
			row.WFH,
			row.TotalWorkHours,
			row.AverageWorkHours,
		}
		if err := f.SetSheetRow(sheetName, cell, &data); err != nil {
			return nil, fmt.Errorf("failed to set row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
