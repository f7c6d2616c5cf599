package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/config"
	"github.com/nominapy/payroll-backend-go/internal/domain/attendance"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/domain/schedule"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
	"github.com/nominapy/payroll-backend-go/internal/pkg/worktime"
	"github.com/nominapy/payroll-backend-go/internal/repository/postgresql"
)

type PayslipServiceImpl struct {
	db *database.DB
	payroll.PayslipRepository
	payroll.WorkEntryRepository
	payroll.WorkEntryTypeRepository
	attendance.AttendanceRepository
	leave.RequestRepository
	employee.EmployeeRepository
	employee.ContractRepository
	schedule.CalendarRepository
	payrollCfg config.PayrollConfig
}

func NewPayslipService(
	db *database.DB,
	payslipRepo payroll.PayslipRepository,
	workEntryRepo payroll.WorkEntryRepository,
	workEntryTypeRepo payroll.WorkEntryTypeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	contractRepo employee.ContractRepository,
	calendarRepo schedule.CalendarRepository,
	payrollCfg config.PayrollConfig,
) payroll.PayslipService {
	return &PayslipServiceImpl{
		db:                      db,
		PayslipRepository:       payslipRepo,
		WorkEntryRepository:     workEntryRepo,
		WorkEntryTypeRepository: workEntryTypeRepo,
		AttendanceRepository:    attendanceRepo,
		RequestRepository:       leaveRepo,
		EmployeeRepository:      employeeRepo,
		ContractRepository:      contractRepo,
		CalendarRepository:      calendarRepo,
		payrollCfg:              payrollCfg,
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

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// ComputePayslip implements payroll.PayslipService.
func (s *PayslipServiceImpl) ComputePayslip(ctx context.Context, req payroll.ComputePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	dateFrom, _ := time.Parse("2006-01-02", req.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", req.DateTo)
	if dateTo.Before(dateFrom) {
		return payroll.PayslipResponse{}, payroll.ErrInvalidPeriod
	}

	var slip payroll.Payslip
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		var err error
		slip, err = s.computeOne(txCtx, req.EmployeeID, companyID, dateFrom, dateTo, req.RunID)
		return err
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return payroll.ToPayslipResponse(slip), nil
}

// computeOne builds and persists one payslip. Callers supply the querier
// context (transactional or not).
func (s *PayslipServiceImpl) computeOne(ctx context.Context, employeeID, companyID string, dateFrom, dateTo time.Time, runID string) (payroll.Payslip, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	contract, err := s.ContractRepository.GetActiveForEmployee(ctx, employeeID, dateFrom, companyID)
	if err != nil {
		return payroll.Payslip{}, payroll.ErrNoActiveContract
	}

	cal, err := s.CalendarRepository.GetByID(ctx, contract.CalendarID, companyID)
	if err != nil {
		return payroll.Payslip{}, err
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
		return payroll.Payslip{}, err
	}

	// Clip the slip window to the contract coverage.
	from := dateFrom
	if contract.DateStart.After(from) {
		from = contract.DateStart
	}
	to := dateTo
	if contract.DateEnd != nil && contract.DateEnd.Before(to) {
		to = *contract.DateEnd
	}

	win := worktime.NightWindow{
		StartHour: s.payrollCfg.NightStartHour,
		EndHour:   s.payrollCfg.NightEndHour,
	}

	// Attendance, work entries and leaves all gather over the same shifted
	// events window, 21st through 20th.
	evFrom, evTo := payroll.EventsWindow(dateFrom, dateTo)
	atts, err := s.AttendanceRepository.ListClosedBetween(ctx, employeeID, evFrom, evTo, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	cls := Classify(atts, loc, win)

	entries, err := s.WorkEntryRepository.ListOverlapping(ctx, contract.ID, evFrom, evTo, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	leaves, err := s.RequestRepository.ListValidatedOverlapping(ctx, employeeID, evFrom, evTo, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	ledger := BuildLedger(AggregatorInput{
		Entries:        entries,
		Leaves:         leaves,
		Classification: cls,
		Calendar:       cal,
		Location:       loc,
		From:           from,
		To:             to,
	})

	types, err := s.WorkEntryTypeRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	catalog := make(map[string]payroll.WorkEntryType, len(types))
	for _, t := range types {
		catalog[t.Code] = t
	}

	coveredDays := float64(worktime.CalendarDaysBetween(from, to, time.UTC))
	lines := BuildWorkedDays(ledger, catalog, &contract, coveredDays)
	gross, net := Totals(lines)

	slip := payroll.Payslip{
		Number:     fmt.Sprintf("SLIP/%s/%s", emp.Code, dateFrom.Format("200601")),
		EmployeeID: employeeID,
		ContractID: contract.ID,
		CompanyID:  companyID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		State:      payroll.PayslipStateDraft,
		WageType:   payroll.WageType(contract.WageType),
		Gross:      gross,
		Net:        net,
	}
	if runID != "" {
		slip.RunID = &runID
	}

	slip, err = s.PayslipRepository.CreatePayslip(ctx, slip)
	if err != nil {
		return payroll.Payslip{}, err
	}

	if err := s.PayslipRepository.ReplaceWorkedDays(ctx, slip.ID, lines); err != nil {
		return payroll.Payslip{}, err
	}

	slip.WorkedDays = lines
	name := emp.FullName()
	slip.EmployeeName = &name
	return slip, nil
}

// GetWorkedDays implements payroll.PayslipService.
func (s *PayslipServiceImpl) GetWorkedDays(ctx context.Context, payslipID string) ([]payroll.WorkedDayLineResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	lines, err := s.PayslipRepository.GetWorkedDays(ctx, payslipID, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.WorkedDayLineResponse, 0, len(lines))
	for _, line := range lines {
		resp = append(resp, payroll.ToWorkedDayLineResponse(line))
	}
	return resp, nil
}

// GetPayslip implements payroll.PayslipService.
func (s *PayslipServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip, err := s.PayslipRepository.GetPayslipByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	lines, err := s.PayslipRepository.GetWorkedDays(ctx, id, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	slip.WorkedDays = lines

	return payroll.ToPayslipResponse(slip), nil
}

// ListPayslips implements payroll.PayslipService.
func (s *PayslipServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.PayslipResponse, int64, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	slips, total, err := s.PayslipRepository.ListPayslips(ctx, filter, companyID)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]payroll.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		resp = append(resp, payroll.ToPayslipResponse(slip))
	}
	return resp, total, nil
}

// CreateRun implements payroll.PayslipService.
func (s *PayslipServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.PayslipRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipRunResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.PayslipRunResponse{}, err
	}

	dateFrom, _ := time.Parse("2006-01-02", req.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", req.DateTo)

	run, err := s.PayslipRepository.CreateRun(ctx, payroll.PayslipRun{
		CompanyID: companyID,
		Name:      req.Name,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		State:     payroll.PayslipRunStateDraft,
	})
	if err != nil {
		return payroll.PayslipRunResponse{}, err
	}

	return payroll.ToPayslipRunResponse(run), nil
}

// ComputeRun implements payroll.PayslipService. Each employee computes in
// its own transaction so one failure never poisons the batch.
func (s *PayslipServiceImpl) ComputeRun(ctx context.Context, runID string) (payroll.ComputeRunResult, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.ComputeRunResult{}, err
	}

	run, err := s.PayslipRepository.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.ComputeRunResult{}, err
	}

	contracts, err := s.ContractRepository.ListActiveInRange(ctx, run.DateFrom, run.DateTo, companyID)
	if err != nil {
		return payroll.ComputeRunResult{}, err
	}

	var result payroll.ComputeRunResult
	for _, contract := range contracts {
		err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)
			_, err := s.computeOne(txCtx, contract.EmployeeID, companyID, run.DateFrom, run.DateTo, runID)
			return err
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, payroll.ComputeRunError{
				EmployeeID: contract.EmployeeID,
				Message:    err.Error(),
			})
			continue
		}
		result.Computed++
	}

	return result, nil
}
