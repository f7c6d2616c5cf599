package leave

import (
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEntitlementDays(t *testing.T) {
	asOf := date(2026, time.June, 15)

	tests := []struct {
		name string
		hire time.Time
		want float64
	}{
		{"hired six months ago", date(2026, time.January, 10), 0},
		{"one day short of a year", date(2025, time.June, 16), 0},
		{"exactly one year", date(2025, time.June, 15), 12},
		{"three years", date(2023, time.March, 1), 12},
		{"five years", date(2021, time.June, 1), 12},
		{"six years", date(2020, time.June, 1), 18},
		{"nine years", date(2017, time.June, 1), 18},
		{"ten years", date(2016, time.June, 1), 30},
		{"twenty years", date(2006, time.January, 1), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntitlementDays(tt.hire, asOf))
		})
	}
}

func TestAllocationPeriodRollsOnAnniversary(t *testing.T) {
	hire := date(2020, time.March, 10)

	from, to := AllocationPeriod(hire, date(2026, time.June, 1))
	assert.Equal(t, date(2026, time.March, 10), from)
	assert.Equal(t, date(2027, time.March, 9), to)

	// Before the anniversary the previous window still applies.
	from, to = AllocationPeriod(hire, date(2026, time.February, 1))
	assert.Equal(t, date(2025, time.March, 10), from)
	assert.Equal(t, date(2026, time.March, 9), to)
}

func TestAllocationPeriodFirstYear(t *testing.T) {
	hire := date(2026, time.February, 1)
	from, to := AllocationPeriod(hire, date(2026, time.August, 1))
	assert.Equal(t, hire, from)
	assert.Equal(t, date(2027, time.January, 31), to)
}

func TestCarryOver(t *testing.T) {
	tests := []struct {
		name string
		prev *leave.Allocation
		want float64
	}{
		{"no previous period", nil, 0},
		{
			"twelve allocated four taken",
			&leave.Allocation{NumberOfDays: 12, LeavesTaken: 4},
			8,
		},
		{
			"liquidated days never carry",
			&leave.Allocation{NumberOfDays: 12, LeavesTaken: 2, LiquidatedDays: 10},
			0,
		},
		{
			"overdrawn floors at zero",
			&leave.Allocation{NumberOfDays: 12, LeavesTaken: 14},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CarryOver(tt.prev))
		})
	}
}

func TestLiquidationDate(t *testing.T) {
	assert.Equal(t, date(2026, time.September, 10), LiquidationDate(date(2026, time.March, 10)))
}

func TestLiquidationStart(t *testing.T) {
	liq := date(2026, time.September, 10)

	// Date passed: first of the month after the liquidation date.
	start := LiquidationStart(date(2026, time.November, 3), liq)
	assert.Equal(t, date(2026, time.October, 1), start)

	// Not yet due: first of the current month.
	start = LiquidationStart(date(2026, time.July, 20), liq)
	assert.Equal(t, date(2026, time.July, 1), start)
}

func TestAvailableToLiquidate(t *testing.T) {
	a := leave.Allocation{NumberOfDays: 18, LeavesTaken: 5, LiquidatedDays: 6}
	assert.Equal(t, 7.0, a.AvailableToLiquidate())

	// A second liquidation of the same balance finds nothing left.
	a.LiquidatedDays += 7
	assert.Zero(t, a.AvailableToLiquidate())
	assert.False(t, a.RequiresLiquidation(date(2026, time.December, 1)))
}

func TestLegacyProratedDays(t *testing.T) {
	hire := date(2026, time.January, 1)

	// Four completed months into the first year: 15 x 4/12 = 5.
	assert.InDelta(t, 5.0, LegacyProratedDays(hire, date(2026, time.May, 1)), 1e-9)

	// Eleven completed months on the last day of the period.
	assert.InDelta(t, 15.0*11/12, LegacyProratedDays(hire, date(2026, time.December, 31)), 1e-9)
}
