package report

import (
	"strings"
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func exportEmployee() employee.Employee {
	return employee.Employee{
		ID:          "emp-1",
		FirstName:   "Juan",
		LastName:    "González",
		NationalID:  strPtr("1234567"),
		BankAccount: strPtr("600123456"),
		Gender:      employee.GenderMale,
		JobCategory: employee.JobCategoryEmployee,
		HireDate:    time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func exportSlip() payroll.Payslip {
	return payroll.Payslip{
		ID:         "slip-1",
		EmployeeID: "emp-1",
		Number:     "SLIP/2025/0042",
		DateFrom:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		DateTo:     time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		State:      payroll.PayslipStateDone,
		Gross:      decimal.NewFromInt(2500000),
		Net:        decimal.NewFromInt(2350000),
	}
}

func TestPadField(t *testing.T) {
	assert.Equal(t, "abc       ", padField("abc", 10))
	assert.Equal(t, "abcde", padField("abcdefgh", 5))
	assert.Equal(t, "   ", padField("", 3))
	assert.Equal(t, "abc ", padField("  abc  ", 4))
}

func TestCentsField(t *testing.T) {
	assert.Equal(t, "0250000000", centsField(decimal.NewFromInt(2500000), 10))
	assert.Equal(t, "000000000", centsField(decimal.NewFromInt(-500), 9))
	assert.Equal(t, "0000012345", centsField(decimal.NewFromFloat(123.45), 10))
}

func TestIPSLine(t *testing.T) {
	line, err := ipsLine("8000123456", "9000654321", exportEmployee(), exportSlip())
	require.NoError(t, err)

	// 3×10 employer/ID fields, 2×30 names, category, days, two amounts, period, movement.
	require.Len(t, line, 10+10+10+30+30+1+2+10+6+2+10)
	assert.Equal(t, "8000123456", line[0:10])
	assert.Equal(t, "9000654321", line[10:20])
	assert.Equal(t, "1234567   ", line[20:30])
	assert.True(t, strings.HasPrefix(line[30:60], "González"))
	assert.True(t, strings.HasPrefix(line[60:90], "Juan"))
	assert.Equal(t, "E", line[90:91])
	assert.Equal(t, "30", line[91:93])
	assert.Equal(t, "0250000000", line[93:103])
	assert.Equal(t, "062025", line[103:109])
	assert.Equal(t, "01", line[109:111])
	assert.Equal(t, "0235000000", line[111:121])
}

func TestIPSLineMissingNationalID(t *testing.T) {
	emp := exportEmployee()
	emp.NationalID = nil

	_, err := ipsLine("8000123456", "9000654321", emp, exportSlip())
	assert.ErrorIs(t, err, report.ErrMissingNationalID)
}

func TestBankTransferLine(t *testing.T) {
	// 2025-06-30 is a Monday.
	payDate := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	line, err := bankTransferLine(exportEmployee(), exportSlip(), payDate)
	require.NoError(t, err)
	assert.Equal(t, `"1234567","600123456","15","250000000","NO","30/06/lunes"`, line)
}

func TestBankTransferLineMissingAccount(t *testing.T) {
	emp := exportEmployee()
	emp.BankAccount = nil

	_, err := bankTransferLine(emp, exportSlip(), time.Now())
	assert.ErrorIs(t, err, report.ErrMissingBankAccount)
}

func TestEmployerNumbers(t *testing.T) {
	comp := company.Company{
		IPSEmployerNumber:   strPtr("8000123456"),
		MTESSEmployerNumber: strPtr("9000654321"),
	}

	ips, mtess, err := employerNumbers(comp)
	require.NoError(t, err)
	assert.Equal(t, "8000123456", ips)
	assert.Equal(t, "9000654321", mtess)

	comp.IPSEmployerNumber = nil
	_, _, err = employerNumbers(comp)
	assert.ErrorIs(t, err, company.ErrMissingIPSNumber)

	comp.IPSEmployerNumber = strPtr("8000123456")
	comp.MTESSEmployerNumber = strPtr("")
	_, _, err = employerNumbers(comp)
	assert.ErrorIs(t, err, company.ErrMissingMTESSNumber)
}
