package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Address          Address
	DateOfBirth      time.Time
	BloodGroup       *BloodGroup
	EmploymentType   EmploymentType
	Department       string
	Position         string
	JoiningDate      time.Time
	Salary           decimal.Decimal
	EmergencyContact EmergencyContact
	LastAppraisal    *time.Time
	NextAppraisal    *time.Time
	IsActive         bool
	UserID           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName is the display name used by ledger joins and alert mails.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

type EmergencyContact struct {
	Name     string `json:"name,omitempty"`
	Relation string `json:"relation,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full-time"
	EmploymentTypePartTime EmploymentType = "part-time"
	EmploymentTypeWFH      EmploymentType = "wfh"
	EmploymentTypeOffice   EmploymentType = "office"
)

func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeWFH, EmploymentTypeOffice:
		return true
	}
	return false
}

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

func (b BloodGroup) IsValid() bool {
	switch b {
	case BloodGroupAPos, BloodGroupANeg, BloodGroupBPos, BloodGroupBNeg,
		BloodGroupABPos, BloodGroupABNeg, BloodGroupOPos, BloodGroupONeg:
		return true
	}
	return false
}
