package response

import (
	"errors"
	"net/http"

	"github.com/tausif-btb/cbl-erp/internal/domain/attendance"
	"github.com/tausif-btb/cbl-erp/internal/domain/auth"
	"github.com/tausif-btb/cbl-erp/internal/domain/employee"
	"github.com/tausif-btb/cbl-erp/internal/domain/payroll"
	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth / account errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrAccountDeactivated):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrAccessDenied):
		Forbidden(w, "Insufficient role for this operation")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeRecordNotFound):
		NotFound(w, "No employee record linked to this account")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Employee with this email already exists")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "Not authorized to access this employee data")

	// Attendance ledger errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNoCheckIn):
		BadRequest(w, "No check-in record found for today", nil)
	case errors.Is(err, attendance.ErrEmployeeIDRequired):
		BadRequest(w, "employee_id is required", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Payroll ledger errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrPayrollExists):
		Conflict(w, "Payroll for this month already exists")
	case errors.Is(err, payroll.ErrCannotDeleteProcessed):
		BadRequest(w, "Cannot delete processed payroll", nil)
	case errors.Is(err, payroll.ErrInvalidPaymentStatus):
		BadRequest(w, "Invalid payment status", nil)
	case errors.Is(err, payroll.ErrInvalidPaymentMethod):
		BadRequest(w, "Invalid payment method", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
