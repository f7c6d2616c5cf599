package payroll

import (
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyContract(wage int64) *employee.Contract {
	return &employee.Contract{
		WageType:  employee.WageTypeMonthly,
		Wage:      decimal.NewFromInt(wage),
		DateStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		State:     employee.ContractStateOpen,
	}
}

func testCatalog() map[string]payroll.WorkEntryType {
	return map[string]payroll.WorkEntryType{
		payroll.CodeWork100: {
			ID: "t-work", Code: payroll.CodeWork100, Name: "Attendance",
			Category: payroll.CategoryAttendance, Sequence: 10, RoundDays: true,
		},
		payroll.CodeOvertimeDay: {
			ID: "t-otd", Code: payroll.CodeOvertimeDay, Name: "Overtime (day)",
			Category: payroll.CategoryOvertimeDay, Sequence: 20,
		},
		payroll.CodeOvertimeNight: {
			ID: "t-otn", Code: payroll.CodeOvertimeNight, Name: "Overtime (night)",
			Category: payroll.CategoryOvertimeNight, Sequence: 30,
		},
		payroll.CodeGuardDay: {
			ID: "t-gd", Code: payroll.CodeGuardDay, Name: "Guard (day)",
			Category: payroll.CategoryGuardDay, Sequence: 40,
		},
		payroll.CodeGuardNight: {
			ID: "t-gn", Code: payroll.CodeGuardNight, Name: "Guard (night)",
			Category: payroll.CategoryGuardNight, Sequence: 50,
		},
		payroll.CodeRecargo: {
			ID: "t-rec", Code: payroll.CodeRecargo, Name: "Night surcharge",
			Category: payroll.CategoryNightSurcharge, Sequence: 60,
		},
		payroll.CodeLate: {
			ID: "t-late", Code: payroll.CodeLate, Name: "Late arrival",
			Category: payroll.CategoryLate, Sequence: 70,
		},
		payroll.CodeUnjustified: {
			ID: "t-unj", Code: payroll.CodeUnjustified, Name: "Unjustified absence",
			Category: payroll.CategoryUnjustified, Sequence: 80,
		},
		"VACATION": {
			ID: "t-vac", Code: "VACATION", Name: "Vacation",
			Category: payroll.CategoryPaidLeave, Sequence: 90, IsLeave: true, RoundDays: true,
		},
	}
}

func lineByCode(t *testing.T, lines []payroll.WorkedDayLine, code string) payroll.WorkedDayLine {
	t.Helper()
	for _, l := range lines {
		if l.Code == code {
			return l
		}
	}
	t.Fatalf("no line with code %s", code)
	return payroll.WorkedDayLine{}
}

func TestEffectiveDaysMonthlyExample(t *testing.T) {
	// 900,000 wage, 28 covered days, 2 leave days: 900000/30 * 28 = 840000
	// regular pay once the 2 vacation days come off the 30-day covered span.
	contract := monthlyContract(900000)

	ledger := payroll.Ledger{
		payroll.CodeWork100: {Hours: 240, Days: 30},
		"VACATION":          {Hours: 16, Days: 2},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 30)

	work := lineByCode(t, lines, payroll.CodeWork100)
	assert.Equal(t, 28.0, work.NumberOfDays)
	assert.True(t, work.Amount.Equal(decimal.NewFromInt(840000)),
		"got %s", work.Amount)

	vac := lineByCode(t, lines, "VACATION")
	assert.True(t, vac.Amount.Equal(decimal.NewFromInt(60000)), "got %s", vac.Amount)
}

func TestEffectiveDaysCapsAtThirty(t *testing.T) {
	contract := monthlyContract(900000)

	ledger := payroll.Ledger{
		payroll.CodeWork100: {Hours: 248, Days: 31},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 31)
	work := lineByCode(t, lines, payroll.CodeWork100)
	assert.Equal(t, 30.0, work.NumberOfDays)
}

func TestEffectiveDaysNeverNegative(t *testing.T) {
	contract := monthlyContract(900000)

	ledger := payroll.Ledger{
		payroll.CodeWork100: {},
		"VACATION":          {Hours: 80, Days: 10},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 5)
	work := lineByCode(t, lines, payroll.CodeWork100)
	assert.Zero(t, work.NumberOfDays)
	assert.True(t, work.Amount.IsZero())
}

func TestOvertimeAndSurchargeRates(t *testing.T) {
	// Wage 720,000: hourly = 720000/240 = 3000.
	contract := monthlyContract(720000)

	ledger := payroll.Ledger{
		payroll.CodeWork100:       {Hours: 160, Days: 20},
		payroll.CodeOvertimeDay:   {Hours: 4},
		payroll.CodeOvertimeNight: {Hours: 2},
		payroll.CodeRecargo:       {Hours: 10},
		payroll.CodeLate:          {Hours: 1.5},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 30)

	// 1.5 x 3000 x 4
	assert.True(t, lineByCode(t, lines, payroll.CodeOvertimeDay).Amount.Equal(decimal.NewFromInt(18000)))
	// 2.0 x 3000 x 2
	assert.True(t, lineByCode(t, lines, payroll.CodeOvertimeNight).Amount.Equal(decimal.NewFromInt(12000)))
	// 0.30 x 3000 x 10
	assert.True(t, lineByCode(t, lines, payroll.CodeRecargo).Amount.Equal(decimal.NewFromInt(9000)))
	// -(3000 x 1.5)
	assert.True(t, lineByCode(t, lines, payroll.CodeLate).Amount.Equal(decimal.NewFromInt(-4500)))

	// Overtime lines carry no day counts.
	assert.Zero(t, lineByCode(t, lines, payroll.CodeOvertimeDay).NumberOfDays)
	assert.Zero(t, lineByCode(t, lines, payroll.CodeRecargo).NumberOfDays)
}

func TestGuardFlatRates(t *testing.T) {
	contract := monthlyContract(720000) // hourly 3000

	ledger := payroll.Ledger{
		payroll.CodeWork100:    {},
		payroll.CodeGuardDay:   {Hours: 12, Days: 1},
		payroll.CodeGuardNight: {Hours: 20, Days: 2},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 30)

	// 1.5 x 3000 x 8 x 1 shift; actual shift length does not matter.
	assert.True(t, lineByCode(t, lines, payroll.CodeGuardDay).Amount.Equal(decimal.NewFromInt(36000)))
	// 2.6 x 3000 x 8 x 2 shifts.
	assert.True(t, lineByCode(t, lines, payroll.CodeGuardNight).Amount.Equal(decimal.NewFromInt(124800)))
}

func TestUnjustifiedDeduction(t *testing.T) {
	contract := monthlyContract(900000) // daily 30000

	ledger := payroll.Ledger{
		payroll.CodeWork100:     {},
		payroll.CodeUnjustified: {Hours: 16, Days: 2},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 30)
	assert.True(t, lineByCode(t, lines, payroll.CodeUnjustified).Amount.Equal(decimal.NewFromInt(-60000)))
}

func TestNilContractZeroesAmounts(t *testing.T) {
	ledger := payroll.Ledger{
		payroll.CodeWork100:     {Hours: 160, Days: 20},
		payroll.CodeOvertimeDay: {Hours: 4},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), nil, 30)
	for _, line := range lines {
		assert.True(t, line.Amount.IsZero(), "line %s should be zero", line.Code)
	}
}

func TestUnknownCodeSkipped(t *testing.T) {
	contract := monthlyContract(900000)

	ledger := payroll.Ledger{
		payroll.CodeWork100: {Hours: 160, Days: 20},
		"MYSTERY":           {Hours: 10, Days: 1},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 30)
	for _, line := range lines {
		require.NotEqual(t, "MYSTERY", line.Code)
	}
}

func TestLinesSortedBySequence(t *testing.T) {
	contract := monthlyContract(900000)

	ledger := payroll.Ledger{
		payroll.CodeLate:        {Hours: 1},
		payroll.CodeWork100:     {Hours: 160, Days: 20},
		payroll.CodeOvertimeDay: {Hours: 2},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 30)
	require.Len(t, lines, 3)
	assert.Equal(t, payroll.CodeWork100, lines[0].Code)
	assert.Equal(t, payroll.CodeOvertimeDay, lines[1].Code)
	assert.Equal(t, payroll.CodeLate, lines[2].Code)
}

func TestTotals(t *testing.T) {
	lines := []payroll.WorkedDayLine{
		{Amount: decimal.NewFromInt(840000)},
		{Amount: decimal.NewFromInt(18000)},
		{Amount: decimal.NewFromInt(-4500)},
	}

	gross, net := Totals(lines)
	assert.True(t, gross.Equal(decimal.NewFromInt(858000)))
	assert.True(t, net.Equal(decimal.NewFromInt(853500)))
}

func TestHourlyContractRates(t *testing.T) {
	contract := &employee.Contract{
		WageType:   employee.WageTypeHourly,
		HourlyWage: decimal.NewFromInt(5000),
		State:      employee.ContractStateOpen,
	}

	ledger := payroll.Ledger{
		payroll.CodeWork100:     {},
		payroll.CodeOvertimeDay: {Hours: 2},
	}

	lines := BuildWorkedDays(ledger, testCatalog(), contract, 30)
	// 1.5 x 5000 x 2
	assert.True(t, lineByCode(t, lines, payroll.CodeOvertimeDay).Amount.Equal(decimal.NewFromInt(15000)))
}
