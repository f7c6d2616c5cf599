package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/config"
	"github.com/nominapy/payroll-backend-go/internal/domain/attendance"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct{ employee.EmployeeRepository }

func (fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	return employee.Employee{ID: id, CompanyID: companyID, Code: "EMP001", FirstName: "Ana", LastName: "Rios"}, nil
}

type fakeContractRepo struct{ employee.ContractRepository }

func (fakeContractRepo) GetActiveForEmployee(_ context.Context, employeeID string, _ time.Time, companyID string) (employee.Contract, error) {
	return employee.Contract{
		ID:         "ct-1",
		EmployeeID: employeeID,
		CompanyID:  companyID,
		CalendarID: "cal-1",
		WageType:   employee.WageTypeMonthly,
		Wage:       decimal.NewFromInt(2600000),
		DateStart:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

type fakeCalendarRepo struct{ schedule.CalendarRepository }

func (fakeCalendarRepo) GetByID(_ context.Context, id string, companyID string) (schedule.Calendar, error) {
	return schedule.Calendar{ID: id, CompanyID: companyID, Timezone: "America/Asuncion", HoursPerDay: 8}, nil
}

type fakeAttendanceRepo struct{ attendance.AttendanceRepository }

func (fakeAttendanceRepo) ListClosedBetween(_ context.Context, _ string, _, _ time.Time, _ string) ([]attendance.Attendance, error) {
	return nil, nil
}

type fakeTypeRepo struct{ payroll.WorkEntryTypeRepository }

func (fakeTypeRepo) ListByCompany(_ context.Context, _ string) ([]payroll.WorkEntryType, error) {
	return nil, nil
}

type fakePayslipRepo struct{ payroll.PayslipRepository }

func (fakePayslipRepo) CreatePayslip(_ context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	slip.ID = "slip-1"
	return slip, nil
}

func (fakePayslipRepo) ReplaceWorkedDays(_ context.Context, _ string, _ []payroll.WorkedDayLine) error {
	return nil
}

type entryWindowRecorder struct {
	payroll.WorkEntryRepository
	from, to time.Time
}

func (r *entryWindowRecorder) ListOverlapping(_ context.Context, _ string, from, to time.Time, _ string) ([]payroll.WorkEntry, error) {
	r.from, r.to = from, to
	return nil, nil
}

type leaveWindowRecorder struct {
	leave.RequestRepository
	from, to time.Time
}

func (r *leaveWindowRecorder) ListValidatedOverlapping(_ context.Context, _ string, from, to time.Time, _ string) ([]leave.Request, error) {
	r.from, r.to = from, to
	return nil, nil
}

func TestComputeOneGathersOverEventsWindow(t *testing.T) {
	entries := &entryWindowRecorder{}
	leaves := &leaveWindowRecorder{}

	svc := &PayslipServiceImpl{
		PayslipRepository:       fakePayslipRepo{},
		WorkEntryRepository:     entries,
		WorkEntryTypeRepository: fakeTypeRepo{},
		AttendanceRepository:    fakeAttendanceRepo{},
		RequestRepository:       leaves,
		EmployeeRepository:      fakeEmployeeRepo{},
		ContractRepository:      fakeContractRepo{},
		CalendarRepository:      fakeCalendarRepo{},
		payrollCfg: config.PayrollConfig{
			DefaultTimezone: "America/Asuncion",
			NightStartHour:  20,
			NightEndHour:    6,
		},
	}

	dateFrom := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	dateTo := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	_, err := svc.computeOne(context.Background(), "emp-1", "co-1", dateFrom, dateTo, "")
	require.NoError(t, err)

	// A March slip gathers events from February 21st through March 20th, for
	// work entries and leaves just like attendance.
	wantFrom := time.Date(2025, time.February, 21, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, time.March, 20, 23, 59, 59, 0, time.UTC)

	assert.True(t, entries.from.Equal(wantFrom), "entries from = %v", entries.from)
	assert.True(t, entries.to.Equal(wantTo), "entries to = %v", entries.to)
	assert.True(t, leaves.from.Equal(wantFrom), "leaves from = %v", leaves.from)
	assert.True(t, leaves.to.Equal(wantTo), "leaves to = %v", leaves.to)
}
