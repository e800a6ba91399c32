package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tausif-btb/cbl-erp/internal/domain/payroll"
	"github.com/tausif-btb/cbl-erp/internal/handler/http/response"
)

type PayrollHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Create implements PayrollHandler.
func (h *payrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.CreatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll created", resp)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.payrollService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter payroll.PayrollFilter

	if v := r.URL.Query().Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "month must be a number", nil)
			return
		}
		filter.Month = &month
	}
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		filter.Year = &year
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.PaymentStatus = &v
	}

	resp, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetByEmployee implements PayrollHandler.
func (h *payrollHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	resp, err := h.payrollService.GetByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UpdateStatus implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.payrollService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment status updated", resp)
}

// Delete implements PayrollHandler.
func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.DeletePayroll(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll deleted", nil)
}
