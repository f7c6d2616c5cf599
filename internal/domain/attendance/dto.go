package attendance

import (
	"time"

	"github.com/nominapy/payroll-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	EmployeeID string `json:"employee_id"`
	IsGuard    bool   `json:"is_guard"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveOvertimeRequest struct {
	AttendanceID   string  `json:"-"`
	ValidatedHours float64 `json:"validated_hours"`
}

func (r *ApproveOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if r.ValidatedHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "validated_hours",
			Message: "validated_hours must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	EmployeeID     string
	DateFrom       *time.Time
	DateTo         *time.Time
	LateStatus     string
	OvertimeStatus string
	Page           int
	Limit          int
}

type AttendanceResponse struct {
	ID                     string     `json:"id"`
	EmployeeID             string     `json:"employee_id"`
	EmployeeName           string     `json:"employee_name,omitempty"`
	CheckIn                time.Time  `json:"check_in"`
	CheckOut               *time.Time `json:"check_out,omitempty"`
	IsGuard                bool       `json:"is_guard"`
	OvertimeStatus         string     `json:"overtime_status"`
	OvertimeHours          float64    `json:"overtime_hours"`
	ValidatedOvertimeHours float64    `json:"validated_overtime_hours"`
	LateStatus             string     `json:"late_status"`
	ScheduledCheckIn       *time.Time `json:"scheduled_check_in,omitempty"`
	LateMinutes            float64    `json:"late_minutes"`
	IsLate                 bool       `json:"is_late"`
	ConfirmedLateMinutes   float64    `json:"confirmed_late_minutes"`
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	Total       int64                `json:"total"`
}

func ToAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                     a.ID,
		EmployeeID:             a.EmployeeID,
		CheckIn:                a.CheckIn,
		CheckOut:               a.CheckOut,
		IsGuard:                a.IsGuard,
		OvertimeStatus:         string(a.OvertimeStatus),
		OvertimeHours:          a.OvertimeHours,
		ValidatedOvertimeHours: a.ValidatedOvertimeHours,
		LateStatus:             string(a.LateStatus),
		ScheduledCheckIn:       a.ScheduledCheckIn,
		LateMinutes:            a.LateMinutes,
		IsLate:                 a.IsLate,
		ConfirmedLateMinutes:   a.ConfirmedLateMinutes,
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	return resp
}
