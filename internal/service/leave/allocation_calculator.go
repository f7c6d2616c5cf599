package leave

import (
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
)

// Statutory vacation entitlement by completed years of service.
func EntitlementDays(hireDate, asOf time.Time) float64 {
	years := completedYears(hireDate, asOf)
	switch {
	case years < 1:
		return 0
	case years <= 5:
		return 12
	case years <= 9:
		return 18
	default:
		return 30
	}
}

// LegacyProratedDays is the older 15-days-a-year policy, prorated by
// completed months of the current anniversary year. Kept for companies that
// still run the old wizard.
func LegacyProratedDays(hireDate, asOf time.Time) float64 {
	from, _ := AllocationPeriod(hireDate, asOf)
	months := 0
	for cursor := from.AddDate(0, 1, 0); !cursor.After(asOf); cursor = cursor.AddDate(0, 1, 0) {
		months++
	}
	if months > 12 {
		months = 12
	}
	return 15.0 * float64(months) / 12.0
}

// AllocationPeriod returns the rolling anniversary window covering asOf:
// [hire + years, hire + years + 1y − 1d]. Employees hired less than a year
// ago get their first window starting on the hire date.
func AllocationPeriod(hireDate, asOf time.Time) (from, to time.Time) {
	years := completedYears(hireDate, asOf)
	from = hireDate.AddDate(years, 0, 0)
	to = from.AddDate(1, 0, -1)
	return from, to
}

// CarryOver is the untaken balance of the previous period that rolls into
// the next one, floored at zero. Liquidated days were already paid in cash
// and never carry.
func CarryOver(prev *leave.Allocation) float64 {
	if prev == nil {
		return 0
	}
	carried := prev.NumberOfDays - prev.LeavesTaken - prev.LiquidatedDays
	if carried < 0 {
		return 0
	}
	return carried
}

// LiquidationDate is the point an untaken balance becomes payable, six
// months into the period.
func LiquidationDate(periodFrom time.Time) time.Time {
	return periodFrom.AddDate(0, 6, 0)
}

// LiquidationStart picks the first day of the payroll month the liquidation
// leave begins on: the month after the liquidation date when it has already
// passed, the current month otherwise.
func LiquidationStart(now, liquidationDate time.Time) time.Time {
	if now.After(liquidationDate) {
		next := liquidationDate.AddDate(0, 1, 0)
		return time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func completedYears(hireDate, asOf time.Time) int {
	years := asOf.Year() - hireDate.Year()
	anniversary := hireDate.AddDate(years, 0, 0)
	if anniversary.After(asOf) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
