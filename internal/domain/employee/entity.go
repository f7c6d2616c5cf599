package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender enum
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// JobCategory buckets employees for the annual labor summary.
type JobCategory string

const (
	JobCategoryChief    JobCategory = "chief"
	JobCategorySubChief JobCategory = "sub_chief"
	JobCategoryEmployee JobCategory = "employee"
)

type Employee struct {
	ID           string
	CompanyID    string
	Code         string
	FirstName    string
	LastName     string
	NationalID   *string
	IPSNumber    *string
	BankAccount  *string
	Gender       Gender
	JobCategory  JobCategory
	JobTitle     *string
	HireDate     time.Time
	Timezone     *string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display and exports.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// ContractState enum
type ContractState string

const (
	ContractStateDraft  ContractState = "draft"
	ContractStateOpen   ContractState = "open"
	ContractStateClosed ContractState = "close"
	ContractStateCancel ContractState = "cancel"
)

// WageType enum
type WageType string

const (
	WageTypeMonthly WageType = "monthly"
	WageTypeHourly  WageType = "hourly"
)

// Contract ties an employee to a wage and a working calendar. DateEnd nil
// means open-ended.
type Contract struct {
	ID         string
	EmployeeID string
	CompanyID  string
	CalendarID string
	WageType   WageType
	Wage       decimal.Decimal
	HourlyWage decimal.Decimal
	DateStart  time.Time
	DateEnd    *time.Time
	State      ContractState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HourlyRate returns the rate one worked hour is paid at: the contractual
// hourly wage for hourly contracts, wage over 30 days of 8 hours otherwise.
func (c Contract) HourlyRate() decimal.Decimal {
	if c.WageType == WageTypeHourly {
		return c.HourlyWage
	}
	return c.Wage.Div(decimal.NewFromInt(240))
}

// DailyRate returns the rate one calendar day is paid at, wage over 30.
func (c Contract) DailyRate() decimal.Decimal {
	if c.WageType == WageTypeHourly {
		return c.HourlyWage.Mul(decimal.NewFromInt(8))
	}
	return c.Wage.Div(decimal.NewFromInt(30))
}

// Covers reports whether the contract is in force on the given date.
func (c Contract) Covers(date time.Time) bool {
	if date.Before(c.DateStart) {
		return false
	}
	if c.DateEnd != nil && date.After(*c.DateEnd) {
		return false
	}
	return true
}
