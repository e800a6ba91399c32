package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeRecordNotFound = errors.New("employee record not found for this account")
	ErrEmailExists            = errors.New("employee with this email already exists")
	ErrUnauthorized           = errors.New("not authorized to access this employee data")
)
