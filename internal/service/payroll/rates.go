package payroll

import (
	"log/slog"
	"math"
	"sort"

	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Statutory multipliers. Guard shifts pay a flat eight hours at their
// multiplier regardless of actual shift length.
var (
	overtimeDayRate    = decimal.NewFromFloat(1.5)
	overtimeNightRate  = decimal.NewFromFloat(2.0)
	guardDayRate       = decimal.NewFromFloat(1.5)
	guardNightRate     = decimal.NewFromFloat(2.6)
	nightSurchargeRate = decimal.NewFromFloat(0.30)
	guardFlatHours     = decimal.NewFromInt(8)
	maxPayableDays     = 30.0
)

// BuildWorkedDays turns a ledger into sorted payslip lines, pricing each
// bucket by its type's category. Codes missing from the catalog are skipped
// with a warning. coveredDays is the number of calendar days the contract
// covers inside the slip window.
func BuildWorkedDays(ledger payroll.Ledger, catalog map[string]payroll.WorkEntryType, contract *employee.Contract, coveredDays float64) []payroll.WorkedDayLine {
	leaveDays := 0.0
	for code, bucket := range ledger {
		t, ok := catalog[code]
		if !ok {
			continue
		}
		if t.Category.IsLeave() {
			leaveDays += bucket.Days
		}
	}

	var lines []payroll.WorkedDayLine
	for code, bucket := range ledger {
		t, ok := catalog[code]
		if !ok {
			slog.Warn("work entry type not configured, skipping bucket", "code", code)
			continue
		}

		days := bucket.Days
		hours := bucket.Hours
		if t.Category == payroll.CategoryAttendance {
			days = effectiveDays(coveredDays, leaveDays)
			hours = days * 8.0
		}

		line := payroll.WorkedDayLine{
			WorkEntryTypeID: t.ID,
			Code:            t.Code,
			Name:            t.Name,
			Category:        t.Category,
			Sequence:        t.Sequence,
			NumberOfDays:    days,
			NumberOfHours:   hours,
			Amount:          computeAmount(t.Category, contract, days, hours),
		}
		if t.Category.IsOvertime() {
			line.NumberOfDays = 0
		}
		lines = append(lines, line)
	}

	roundDays(lines, catalog)

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Sequence != lines[j].Sequence {
			return lines[i].Sequence < lines[j].Sequence
		}
		return lines[i].Code < lines[j].Code
	})

	return lines
}

// effectiveDays caps the paid regular days at 30 and discounts validated
// leave days.
func effectiveDays(coveredDays, leaveDays float64) float64 {
	days := math.Min(maxPayableDays, coveredDays) - leaveDays
	if days < 0 {
		return 0
	}
	return days
}

// computeAmount prices one bucket. A nil contract yields zero.
func computeAmount(cat payroll.Category, contract *employee.Contract, days, hours float64) decimal.Decimal {
	if contract == nil {
		return decimal.Zero
	}

	hourly := contract.HourlyRate()
	daily := contract.DailyRate()
	h := decimal.NewFromFloat(hours)
	d := decimal.NewFromFloat(days)

	switch cat {
	case payroll.CategoryAttendance:
		return daily.Mul(d)
	case payroll.CategoryOvertimeDay:
		return overtimeDayRate.Mul(hourly).Mul(h)
	case payroll.CategoryOvertimeNight:
		return overtimeNightRate.Mul(hourly).Mul(h)
	case payroll.CategoryGuardDay:
		return guardDayRate.Mul(hourly).Mul(guardFlatHours).Mul(d)
	case payroll.CategoryGuardNight:
		return guardNightRate.Mul(hourly).Mul(guardFlatHours).Mul(d)
	case payroll.CategoryNightSurcharge:
		return nightSurchargeRate.Mul(hourly).Mul(h)
	case payroll.CategoryLate:
		return hourly.Mul(h).Neg()
	case payroll.CategoryUnjustified:
		return daily.Mul(d).Neg()
	case payroll.CategoryPaidLeave:
		return daily.Mul(d)
	case payroll.CategoryUnpaidLeave:
		return decimal.Zero
	default:
		slog.Warn("no rate rule for category, amount zeroed", "category", cat.String())
		return decimal.Zero
	}
}

// roundDays rounds the day counts of round_days types to integers and
// settles the accumulated remainder on the line with the most days, so the
// total never drifts.
func roundDays(lines []payroll.WorkedDayLine, catalog map[string]payroll.WorkEntryType) {
	remainder := 0.0
	largest := -1
	for i := range lines {
		t, ok := catalog[lines[i].Code]
		if !ok || !t.RoundDays {
			continue
		}
		rounded := math.Floor(lines[i].NumberOfDays + 0.5)
		remainder += lines[i].NumberOfDays - rounded
		lines[i].NumberOfDays = rounded
		if largest < 0 || lines[i].NumberOfDays > lines[largest].NumberOfDays {
			largest = i
		}
	}
	if largest >= 0 {
		settled := math.Floor(remainder + 0.5)
		if settled != 0 {
			lines[largest].NumberOfDays += settled
		}
	}
}

// Totals sums the positive lines into a gross and every line into a net.
func Totals(lines []payroll.WorkedDayLine) (gross, net decimal.Decimal) {
	gross = decimal.Zero
	net = decimal.Zero
	for _, line := range lines {
		net = net.Add(line.Amount)
		if line.Amount.IsPositive() {
			gross = gross.Add(line.Amount)
		}
	}
	return gross, net
}
