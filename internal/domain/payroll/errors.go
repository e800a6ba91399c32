package payroll

import "errors"

var (
	ErrPayrollNotFound       = errors.New("payroll not found")
	ErrPayrollExists         = errors.New("payroll for this month already exists")
	ErrCannotDeleteProcessed = errors.New("cannot delete processed payroll")
	ErrInvalidPaymentStatus  = errors.New("invalid payment status")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
)
