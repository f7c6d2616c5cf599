package leave

import "time"

// State enum for leave requests and allocations. Only validated records feed
// the payroll ledger.
type State string

const (
	StateConfirm   State = "confirm"
	StateValidate1 State = "validate1"
	StateValidate  State = "validate"
	StateRefuse    State = "refuse"
	StateCancel    State = "cancel"
)

// ValidationType enum on the leave type
type ValidationType string

const (
	ValidationNone    ValidationType = "no_validation"
	ValidationHR      ValidationType = "hr"
	ValidationManager ValidationType = "manager"
	ValidationBoth    ValidationType = "both"
)

// LeaveType is the catalog of absence kinds. WorkEntryTypeID links it into
// the payroll category system; RequiresAllocation gates requests behind an
// allocation balance. Unlimited types skip balance tracking entirely.
type LeaveType struct {
	ID                 string
	CompanyID          string
	Name               string
	WorkEntryTypeID    *string
	RequiresAllocation bool
	Unlimited          bool
	ValidationType     ValidationType
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	WorkEntryTypeCode *string
}

// Request is one leave ask over a calendar-day range. The optional hour
// sub-range narrows a single-day request.
type Request struct {
	ID                    string
	EmployeeID            string
	CompanyID             string
	LeaveTypeID           string
	DateFrom              time.Time
	DateTo                time.Time
	RequestUnitHours      bool
	HourFrom              *float64
	HourTo                *float64
	NumberOfDays          float64
	State                 State
	ReplacementEmployeeID *string
	Reason                *string
	AttachmentURL         *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Joined fields
	EmployeeName      *string
	LeaveTypeName     *string
	WorkEntryTypeCode *string
}

// Allocation grants days of a leave type over a rolling anniversary period.
// LiquidationDate marks when an untaken balance becomes payable in cash.
type Allocation struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	LeaveTypeID     string
	NumberOfDays    float64
	CarriedOverDays float64
	LiquidatedDays  float64
	DateFrom        time.Time
	DateTo          time.Time
	LiquidationDate time.Time
	State           State
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName  *string
	LeaveTypeName *string
	LeavesTaken   float64
}

// AvailableToLiquidate is the untaken, not yet liquidated balance, floored
// at zero.
func (a Allocation) AvailableToLiquidate() float64 {
	available := a.NumberOfDays - a.LeavesTaken - a.LiquidatedDays
	if available < 0 {
		return 0
	}
	return available
}

// RequiresLiquidation reports whether the liquidation date has passed with
// days still available.
func (a Allocation) RequiresLiquidation(now time.Time) bool {
	return !now.Before(a.LiquidationDate) && a.AvailableToLiquidate() > 0
}

// Balance is the per-type summary returned to the employee. Unlimited types
// report the sentinel instead of numbers.
type Balance struct {
	LeaveTypeID      string
	LeaveTypeName    string
	Unlimited        bool
	MaxLeaves        float64
	LeavesTaken      float64
	VirtualRemaining float64
}
