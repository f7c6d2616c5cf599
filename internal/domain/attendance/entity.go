package attendance

import "time"

// ApprovalStatus enum, shared by the late and overtime workflows.
type ApprovalStatus string

const (
	ApprovalToApprove ApprovalStatus = "to_approve"
	ApprovalApproved  ApprovalStatus = "approved"
	ApprovalRefused   ApprovalStatus = "refused"
)

// Attendance is one check-in/check-out pair. Timestamps are UTC; every
// wall-clock decision (lateness, night hours) converts into the employee
// timezone first.
type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	CheckIn    time.Time
	CheckOut   *time.Time
	IsGuard    bool

	// Overtime workflow. ValidatedOvertimeHours is the portion of the shift
	// a manager approved as overtime, measured backwards from check-out.
	OvertimeStatus         ApprovalStatus
	OvertimeHours          float64
	ValidatedOvertimeHours float64

	// Late workflow. ScheduledCheckIn is derived from the contract calendar.
	// LateMinutes is the raw gap past the schedule; IsLate marks the ones past
	// the company threshold. ConfirmedLateMinutes only accumulates once a
	// manager approves.
	LateStatus           ApprovalStatus
	ScheduledCheckIn     *time.Time
	LateMinutes          float64
	IsLate               bool
	ConfirmedLateMinutes float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// IsOpen reports whether the session has no check-out yet. Open sessions
// never feed overtime, guard, or night-surcharge computations.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// WorkedHours returns the elapsed hours of a closed session, zero otherwise.
func (a Attendance) WorkedHours() float64 {
	if a.CheckOut == nil {
		return 0
	}
	h := a.CheckOut.Sub(a.CheckIn).Hours()
	if h < 0 {
		return 0
	}
	return h
}

// OvertimeWindow returns the approved overtime interval, measured backwards
// from check-out. ok is false for open sessions or unapproved overtime.
func (a Attendance) OvertimeWindow() (start, end time.Time, ok bool) {
	if a.CheckOut == nil || a.OvertimeStatus != ApprovalApproved || a.ValidatedOvertimeHours <= 0 {
		return time.Time{}, time.Time{}, false
	}
	end = *a.CheckOut
	start = end.Add(-time.Duration(a.ValidatedOvertimeHours * float64(time.Hour)))
	if start.Before(a.CheckIn) {
		start = a.CheckIn
	}
	return start, end, true
}
