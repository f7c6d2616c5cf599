package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nominapy/payroll-backend-go/internal/config"
	"github.com/nominapy/payroll-backend-go/internal/domain/attendance"
	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/schedule"
	"github.com/nominapy/payroll-backend-go/internal/pkg/worktime"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	employee.ContractRepository
	schedule.CalendarRepository
	company.CompanyRepository
	payrollCfg config.PayrollConfig
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	contractRepo employee.ContractRepository,
	calendarRepo schedule.CalendarRepository,
	companyRepo company.CompanyRepository,
	payrollCfg config.PayrollConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		ContractRepository:   contractRepo,
		CalendarRepository:   calendarRepo,
		CompanyRepository:    companyRepo,
		payrollCfg:           payrollCfg,
		now:                  time.Now,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, err = s.AttendanceRepository.GetOpenSession(ctx, req.EmployeeID, companyID)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	checkIn := s.now().UTC()

	record := attendance.Attendance{
		EmployeeID:     req.EmployeeID,
		CompanyID:      companyID,
		CheckIn:        checkIn,
		IsGuard:        req.IsGuard,
		OvertimeStatus: attendance.ApprovalToApprove,
		LateStatus:     attendance.ApprovalToApprove,
	}

	// Guards have no schedule to be late against.
	if !req.IsGuard {
		if err := s.recomputeLateness(ctx, emp, companyID, &record); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return attendance.ToAttendanceResponse(created), nil
}

// recomputeLateness derives the scheduled check-in from the active contract's
// calendar first interval of the local day, then records the raw gap and
// flags the session late when the gap exceeds the company threshold.
func (s *AttendanceServiceImpl) recomputeLateness(ctx context.Context, emp employee.Employee, companyID string, record *attendance.Attendance) error {
	contract, err := s.ContractRepository.GetActiveForEmployee(ctx, emp.ID, record.CheckIn, companyID)
	if err != nil {
		// No contract means no schedule; the session still records.
		return nil
	}

	cal, err := s.CalendarRepository.GetByID(ctx, contract.CalendarID, companyID)
	if err != nil {
		return err
	}

	tzName := cal.Timezone
	if emp.Timezone != nil && *emp.Timezone != "" {
		tzName = *emp.Timezone
	}
	if tzName == "" {
		tzName = s.payrollCfg.DefaultTimezone
	}
	loc, err := worktime.LoadLocation(tzName)
	if err != nil {
		return err
	}

	localIn := record.CheckIn.In(loc)
	hourFrom, ok := cal.FirstIntervalStart(schedule.WeekdayIndex(localIn.Weekday()))
	if !ok {
		return nil
	}

	midnight := time.Date(localIn.Year(), localIn.Month(), localIn.Day(), 0, 0, 0, 0, loc)
	scheduled := midnight.Add(time.Duration(hourFrom * float64(time.Hour))).UTC()

	threshold := s.payrollCfg.LateThresholdMins
	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err == nil && comp.LateThresholdMinutes > 0 {
		threshold = comp.LateThresholdMinutes
	}

	applyLateness(record, scheduled, threshold)
	return nil
}

// applyLateness always stores the raw minutes past the schedule; the
// threshold only decides whether the session is flagged late.
func applyLateness(record *attendance.Attendance, scheduled time.Time, thresholdMins int) {
	record.ScheduledCheckIn = &scheduled

	lateMinutes := record.CheckIn.Sub(scheduled).Minutes()
	if lateMinutes < 0 {
		lateMinutes = 0
	}

	record.LateMinutes = lateMinutes
	record.IsLate = lateMinutes > float64(thresholdMins)
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetOpenSession(ctx, req.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}

	checkOut := s.now().UTC()
	if checkOut.Before(record.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}
	record.CheckOut = &checkOut

	// Guard shifts pay flat; only regular sessions accrue overtime.
	if !record.IsGuard {
		record.OvertimeHours = s.overtimeHours(ctx, record, companyID)
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return attendance.ToAttendanceResponse(record), nil
}

// overtimeHours is the worked time beyond the calendar's daily hours,
// pending manager validation.
func (s *AttendanceServiceImpl) overtimeHours(ctx context.Context, record attendance.Attendance, companyID string) float64 {
	contract, err := s.ContractRepository.GetActiveForEmployee(ctx, record.EmployeeID, record.CheckIn, companyID)
	if err != nil {
		return 0
	}
	cal, err := s.CalendarRepository.GetByID(ctx, contract.CalendarID, companyID)
	if err != nil {
		return 0
	}

	hoursPerDay := cal.HoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = 8
	}

	overtime := record.WorkedHours() - hoursPerDay
	if overtime < 0 {
		return 0
	}
	return overtime
}

// ApproveLate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ApproveLate(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.LateStatus != attendance.ApprovalToApprove {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}

	record.LateStatus = attendance.ApprovalApproved
	record.ConfirmedLateMinutes = record.LateMinutes

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return attendance.ToAttendanceResponse(record), nil
}

// RefuseLate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RefuseLate(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.LateStatus != attendance.ApprovalToApprove {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}

	record.LateStatus = attendance.ApprovalRefused
	record.ConfirmedLateMinutes = 0

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return attendance.ToAttendanceResponse(record), nil
}

// ApproveOvertime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ApproveOvertime(ctx context.Context, req attendance.ApproveOvertimeRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.AttendanceID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.IsOpen() {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceOpen
	}
	if record.OvertimeStatus != attendance.ApprovalToApprove {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}
	if req.ValidatedHours > record.WorkedHours() {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidOvertimeHours
	}

	record.OvertimeStatus = attendance.ApprovalApproved
	record.ValidatedOvertimeHours = req.ValidatedHours

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return attendance.ToAttendanceResponse(record), nil
}

// RefuseOvertime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RefuseOvertime(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.OvertimeStatus != attendance.ApprovalToApprove {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}

	record.OvertimeStatus = attendance.ApprovalRefused
	record.ValidatedOvertimeHours = 0

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return attendance.ToAttendanceResponse(record), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToAttendanceResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
		Total:       total,
	}
	for _, r := range records {
		resp.Attendances = append(resp.Attendances, attendance.ToAttendanceResponse(r))
	}
	return resp, nil
}
