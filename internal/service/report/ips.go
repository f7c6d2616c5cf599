package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

// padField truncates to width and right-pads with spaces, the fixed-width
// convention of the IPS file.
func padField(s string, width int) string {
	s = strings.TrimSpace(s)
	if len(s) > width {
		s = s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// centsField renders an amount as zero-padded integer cents.
func centsField(amount decimal.Decimal, width int) string {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents < 0 {
		cents = 0
	}
	return fmt.Sprintf("%0*d", width, cents)
}

// ipsLine builds one fixed-width IPS declaration line: employer numbers,
// national ID, surname, given name, category, days, taxable salary, period,
// movement code and net salary.
func ipsLine(ipsNumber, mtessNumber string, emp employee.Employee, slip payroll.Payslip) (string, error) {
	if emp.NationalID == nil || *emp.NationalID == "" {
		return "", fmt.Errorf("%w: %s", report.ErrMissingNationalID, emp.FullName())
	}

	var b strings.Builder
	b.WriteString(padField(ipsNumber, 10))
	b.WriteString(padField(mtessNumber, 10))
	b.WriteString(padField(*emp.NationalID, 10))
	b.WriteString(padField(emp.LastName, 30))
	b.WriteString(padField(emp.FirstName, 30))
	b.WriteString("E")
	b.WriteString("30")
	b.WriteString(centsField(slip.Gross, 10))
	b.WriteString(fmt.Sprintf("%02d%04d", slip.DateTo.Month(), slip.DateTo.Year()))
	b.WriteString("01")
	b.WriteString(centsField(slip.Net, 10))
	return b.String(), nil
}

var spanishWeekdays = map[time.Weekday]string{
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
	time.Sunday:    "domingo",
}

// bankTransferLine builds one quoted CSV line of the salary credit file:
// national ID, account, salary concept code, amount in cents, bonus flag
// and the payment date with its Spanish weekday name.
func bankTransferLine(emp employee.Employee, slip payroll.Payslip, payDate time.Time) (string, error) {
	if emp.NationalID == nil || *emp.NationalID == "" {
		return "", fmt.Errorf("%w: %s", report.ErrMissingNationalID, emp.FullName())
	}
	if emp.BankAccount == nil || *emp.BankAccount == "" {
		return "", fmt.Errorf("%w: %s", report.ErrMissingBankAccount, emp.FullName())
	}

	payDateField := fmt.Sprintf("%02d/%02d/%s", payDate.Day(), payDate.Month(), spanishWeekdays[payDate.Weekday()])

	fields := []string{
		*emp.NationalID,
		*emp.BankAccount,
		"15",
		centsField(slip.Gross, 9),
		"NO",
		payDateField,
	}
	for i, f := range fields {
		fields[i] = `"` + f + `"`
	}
	return strings.Join(fields, ","), nil
}

// employerNumbers extracts the configured IPS and MTESS employer numbers.
func employerNumbers(c company.Company) (string, string, error) {
	if c.IPSEmployerNumber == nil || *c.IPSEmployerNumber == "" {
		return "", "", company.ErrMissingIPSNumber
	}
	if c.MTESSEmployerNumber == nil || *c.MTESSEmployerNumber == "" {
		return "", "", company.ErrMissingMTESSNumber
	}
	return *c.IPSEmployerNumber, *c.MTESSEmployerNumber, nil
}
