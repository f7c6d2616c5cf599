package response

import (
	"errors"
	"net/http"

	"github.com/nominapy/payroll-backend-go/internal/domain/attendance"
	"github.com/nominapy/payroll-backend-go/internal/domain/auth"
	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/domain/report"
	"github.com/nominapy/payroll-backend-go/internal/domain/schedule"
	"github.com/nominapy/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid employee code or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You already have an open attendance session")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "You have no open attendance session", nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out cannot be before check-in", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceOpen):
		Conflict(w, "Attendance session is still open")
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Attendance has already been approved or refused")
	case errors.Is(err, attendance.ErrInvalidOvertimeHours):
		BadRequest(w, "Validated overtime hours exceed the worked hours", nil)
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrAllocationNotFound):
		NotFound(w, "Allocation not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave overlaps an existing request")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrNothingToLiquidate):
		BadRequest(w, "No days available to liquidate", nil)
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request has already been processed")
	case errors.Is(err, leave.ErrAllocationAlreadyExists):
		Conflict(w, "Allocation already exists for this period")
	case errors.Is(err, leave.ErrLiquidationNotDue):
		BadRequest(w, "Liquidation date has not passed yet", nil)
	case errors.Is(err, leave.ErrNoLiquidationLeaveType):
		BadRequest(w, "Liquidation leave type is not configured", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrContractNotFound):
		NotFound(w, "No active contract found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, employee.ErrMissingNationalID):
		BadRequest(w, err.Error(), nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrMissingIPSNumber),
		errors.Is(err, company.ErrMissingMTESSNumber),
		errors.Is(err, company.ErrMissingLiquidationPolicy),
		errors.Is(err, company.ErrInvalidLateThreshold):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipRunNotFound):
		NotFound(w, "Payslip run not found")
	case errors.Is(err, payroll.ErrWorkEntryTypeNotFound):
		NotFound(w, "Work entry type not found")
	case errors.Is(err, payroll.ErrPayslipAlreadyPaid):
		Conflict(w, "Payslip already paid, cannot recompute")
	case errors.Is(err, payroll.ErrNoActiveContract):
		BadRequest(w, "Employee has no contract covering the period", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payslip period", nil)
	case errors.Is(err, payroll.ErrRunNotComputed):
		BadRequest(w, "Payslip run has no computed payslips", nil)
	case errors.Is(err, payroll.ErrMissingEmployerNumbers):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrNoPayslips):
		BadRequest(w, "No computed payslips for this export", nil)
	case errors.Is(err, report.ErrMissingNationalID),
		errors.Is(err, report.ErrMissingBankAccount):
		BadRequest(w, err.Error(), nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrCalendarNotFound):
		NotFound(w, "Working calendar not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
