package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a work entry type for the rate engine. Payment rules
// dispatch on the category, never on the raw code string.
type Category int

const (
	CategoryAttendance Category = iota
	CategoryOvertimeDay
	CategoryOvertimeNight
	CategoryGuardDay
	CategoryGuardNight
	CategoryNightSurcharge
	CategoryLate
	CategoryUnjustified
	CategoryPaidLeave
	CategoryUnpaidLeave
)

func (c Category) String() string {
	switch c {
	case CategoryAttendance:
		return "attendance"
	case CategoryOvertimeDay:
		return "overtime_day"
	case CategoryOvertimeNight:
		return "overtime_night"
	case CategoryGuardDay:
		return "guard_day"
	case CategoryGuardNight:
		return "guard_night"
	case CategoryNightSurcharge:
		return "night_surcharge"
	case CategoryLate:
		return "late"
	case CategoryUnjustified:
		return "unjustified"
	case CategoryPaidLeave:
		return "paid_leave"
	case CategoryUnpaidLeave:
		return "unpaid_leave"
	default:
		return "unknown"
	}
}

// IsOvertime reports whether the category is paid by the hour on top of the
// base salary and therefore carries zero days on the worked-days line.
func (c Category) IsOvertime() bool {
	return c == CategoryOvertimeDay || c == CategoryOvertimeNight || c == CategoryNightSurcharge
}

// IsLeave reports whether the category is paid by calendar day at the daily
// rate.
func (c Category) IsLeave() bool {
	return c == CategoryPaidLeave || c == CategoryUnpaidLeave
}

// Well-known work entry type codes. WORK100 is the default bucket every
// ledger materializes even when the period has no activity.
const (
	CodeWork100       = "WORK100"
	CodeOvertimeDay   = "OVERTIME_EVENING"
	CodeOvertimeNight = "OVERTIME_NIGHT"
	CodeGuardDay      = "GUARD_EVENING"
	CodeGuardNight    = "GUARD_NIGHT"
	CodeRecargo       = "RECARGON"
	CodeLate          = "LATE"
	CodeUnjustified   = "UNJUSTIFIED"
)

// WorkEntryType is the catalog row a work entry or leave type points at.
type WorkEntryType struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Category  Category
	Sequence  int
	IsLeave   bool
	RoundDays bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkEntryState enum
type WorkEntryState string

const (
	WorkEntryStateDraft     WorkEntryState = "draft"
	WorkEntryStateValidated WorkEntryState = "validated"
	WorkEntryStateConflict  WorkEntryState = "conflict"
	WorkEntryStateCancelled WorkEntryState = "cancelled"
)

// WorkEntry is one timestamped slice of worked (or absent) time.
type WorkEntry struct {
	ID              string
	EmployeeID      string
	ContractID      string
	CompanyID       string
	WorkEntryTypeID string
	DateStart       time.Time
	DateStop        time.Time
	State           WorkEntryState
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	TypeCode     *string
	TypeCategory *Category
	TypeIsLeave  *bool
}

// Bucket accumulates hours and days for one work entry type code.
type Bucket struct {
	Hours float64
	Days  float64
}

// Ledger maps work entry type codes to their accumulated buckets for a
// payslip period.
type Ledger map[string]Bucket

// Add accumulates into the bucket for code, creating it when absent.
func (l Ledger) Add(code string, hours, days float64) {
	b := l[code]
	b.Hours += hours
	b.Days += days
	l[code] = b
}

// PayslipState enum
type PayslipState string

const (
	PayslipStateDraft PayslipState = "draft"
	PayslipStateDone  PayslipState = "done"
	PayslipStatePaid  PayslipState = "paid"
)

// WageType enum
type WageType string

const (
	WageTypeMonthly WageType = "monthly"
	WageTypeHourly  WageType = "hourly"
)

// Payslip covers one employee and contract over a date range. Attendance
// events feeding the slip are gathered over the events window, the 21st of
// the month before DateFrom through the 20th of DateTo's month.
type Payslip struct {
	ID         string
	Number     string
	EmployeeID string
	ContractID string
	CompanyID  string
	RunID      *string
	DateFrom   time.Time
	DateTo     time.Time
	State      PayslipState
	WageType   WageType
	Gross      decimal.Decimal
	Net        decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
	WorkedDays   []WorkedDayLine
}

// WorkedDayLine is one computed line of a payslip, keyed by work entry type.
type WorkedDayLine struct {
	ID              string
	PayslipID       string
	WorkEntryTypeID string
	Code            string
	Name            string
	Category        Category
	Sequence        int
	NumberOfDays    float64
	NumberOfHours   float64
	Amount          decimal.Decimal
}

// PayslipRunState enum
type PayslipRunState string

const (
	PayslipRunStateDraft    PayslipRunState = "draft"
	PayslipRunStateVerified PayslipRunState = "verified"
	PayslipRunStateClosed   PayslipRunState = "close"
)

// PayslipRun groups slips of one payroll period and drives the exports.
type PayslipRun struct {
	ID        string
	CompanyID string
	Name      string
	DateFrom  time.Time
	DateTo    time.Time
	State     PayslipRunState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventsWindow returns the event gathering window for a payslip period, used
// for attendance, work entries and validated leaves alike: the 21st of the
// month before from through the 20th of to's month.
func EventsWindow(from, to time.Time) (time.Time, time.Time) {
	start := time.Date(from.Year(), from.Month(), 21, 0, 0, 0, 0, from.Location()).AddDate(0, -1, 0)
	end := time.Date(to.Year(), to.Month(), 20, 23, 59, 59, 0, to.Location())
	return start, end
}
