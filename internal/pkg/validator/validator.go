package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidDate reports whether s parses as a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9\- ]{7,20}$`)

// Phone validation: digits with optional leading + and separators.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidMonth reports whether m is a calendar month number.
func IsValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

// IsValidYear bounds payroll years to something sane.
func IsValidYear(y int) bool {
	return y >= 2000 && y <= 2200
}
