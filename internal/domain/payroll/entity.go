package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is one ledger row per (employee, month, year); the payrolls table
// carries a UNIQUE constraint on that triple.
type Payroll struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int
	BaseSalary decimal.Decimal
	Allowances decimal.Decimal
	Deductions decimal.Decimal
	Bonus      decimal.Decimal
	TaxAmount  decimal.Decimal
	// NetSalary = base + allowances + bonus - deductions - tax, fixed at
	// creation time and never recomputed by later edits.
	NetSalary        decimal.Decimal
	PaymentStatus    PaymentStatus
	PaymentDate      *time.Time
	PaymentMethod    PaymentMethod
	PaymentReference *string
	Comments         *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined employee display fields
	EmployeeName  *string
	EmployeeEmail *string
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCash         PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodCash:
		return true
	}
	return false
}

// NetSalary computes the derived net amount from the payroll components.
func NetSalary(base, allowances, bonus, deductions, tax decimal.Decimal) decimal.Decimal {
	return base.Add(allowances).Add(bonus).Sub(deductions).Sub(tax)
}
