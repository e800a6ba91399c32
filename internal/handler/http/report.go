package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tausif-btb/cbl-erp/internal/domain/report"
	"github.com/tausif-btb/cbl-erp/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	ExportAttendanceSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func summaryFilterFromQuery(r *http.Request) report.SummaryFilter {
	return report.SummaryFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
}

// AttendanceSummary implements ReportHandler.
func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.reportService.AttendanceSummary(r.Context(), summaryFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ExportAttendanceSummary implements ReportHandler.
func (h *reportHandlerImpl) ExportAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	data, err := h.reportService.ExportAttendanceSummary(r.Context(), summaryFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-summary-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
