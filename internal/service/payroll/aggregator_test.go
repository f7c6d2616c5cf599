package payroll

import (
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayCalendar() schedule.Calendar {
	cal := schedule.Calendar{HoursPerDay: 8}
	for dow := 0; dow < 5; dow++ {
		cal.Lines = append(cal.Lines,
			schedule.CalendarLine{DayOfWeek: dow, HourFrom: 8, HourTo: 12, DayPeriod: schedule.DayPeriodMorning},
			schedule.CalendarLine{DayOfWeek: dow, HourFrom: 13, HourTo: 17, DayPeriod: schedule.DayPeriodAfternoon},
		)
	}
	return cal
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func workEntry(code string, start, stop time.Time) payroll.WorkEntry {
	return payroll.WorkEntry{
		DateStart:   start,
		DateStop:    stop,
		State:       payroll.WorkEntryStateValidated,
		TypeCode:    strPtr(code),
		TypeIsLeave: boolPtr(false),
	}
}

func TestBuildLedgerEmptyPeriodMaterializesDefault(t *testing.T) {
	loc := testLocation(t)
	// A weekend-only window so no unjustified days appear either.
	from := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)

	ledger := BuildLedger(AggregatorInput{
		Calendar: weekdayCalendar(),
		Location: loc,
		From:     from,
		To:       to,
	})

	bucket, ok := ledger[payroll.CodeWork100]
	require.True(t, ok, "default bucket must always exist")
	assert.Zero(t, bucket.Hours)
	assert.Zero(t, bucket.Days)
}

func TestBuildLedgerSumsWorkEntries(t *testing.T) {
	loc := testLocation(t)
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)

	ledger := BuildLedger(AggregatorInput{
		Entries: []payroll.WorkEntry{
			workEntry(payroll.CodeWork100,
				time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC),
				time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)),
		},
		Calendar: weekdayCalendar(),
		Location: loc,
		From:     from,
		To:       to,
	})

	assert.InDelta(t, 9.0, ledger[payroll.CodeWork100].Hours, 1e-9)
}

func TestBuildLedgerClipsBoundaryEntries(t *testing.T) {
	loc := testLocation(t)
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)

	// Entry starts before the window; only the inside portion counts.
	ledger := BuildLedger(AggregatorInput{
		Entries: []payroll.WorkEntry{
			workEntry(payroll.CodeWork100,
				time.Date(2025, time.March, 9, 22, 0, 0, 0, time.UTC),
				time.Date(2025, time.March, 10, 6, 0, 0, 0, time.UTC)),
		},
		Calendar: weekdayCalendar(),
		Location: loc,
		From:     from,
		To:       to,
	})

	assert.InDelta(t, 6.0, ledger[payroll.CodeWork100].Hours, 1e-9)
}

func TestBuildLedgerMovesGuardAndOvertimeOutOfDefault(t *testing.T) {
	loc := testLocation(t)
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)

	ledger := BuildLedger(AggregatorInput{
		Entries: []payroll.WorkEntry{
			workEntry(payroll.CodeWork100,
				time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC),
				time.Date(2025, time.March, 11, 8, 0, 0, 0, time.UTC)),
		},
		Classification: Classification{
			GuardNightShifts:   1,
			GuardNightHours:    10,
			OvertimeDayHours:   2,
			OvertimeNightHours: 1,
		},
		Calendar: weekdayCalendar(),
		Location: loc,
		From:     from,
		To:       to,
	})

	// 24 entry hours minus 10 guard and 3 overtime.
	assert.InDelta(t, 11.0, ledger[payroll.CodeWork100].Hours, 1e-9)
	assert.InDelta(t, 10.0, ledger[payroll.CodeGuardNight].Hours, 1e-9)
	assert.InDelta(t, 1.0, ledger[payroll.CodeGuardNight].Days, 1e-9)
	assert.InDelta(t, 2.0, ledger[payroll.CodeOvertimeDay].Hours, 1e-9)
	assert.InDelta(t, 1.0, ledger[payroll.CodeOvertimeNight].Hours, 1e-9)
	// Overtime buckets carry no days.
	assert.Zero(t, ledger[payroll.CodeOvertimeDay].Days)
}

func TestBuildLedgerDefaultBucketNeverNegative(t *testing.T) {
	loc := testLocation(t)
	from := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)

	ledger := BuildLedger(AggregatorInput{
		Classification: Classification{GuardDayShifts: 2, GuardDayHours: 24},
		Calendar:       weekdayCalendar(),
		Location:       loc,
		From:           from,
		To:             to,
	})

	assert.Zero(t, ledger[payroll.CodeWork100].Hours)
	assert.InDelta(t, 24.0, ledger[payroll.CodeGuardDay].Hours, 1e-9)
}

func TestBuildLedgerLeavePartialDayCountsWhole(t *testing.T) {
	loc := testLocation(t)
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	code := "VACATION"
	ledger := BuildLedger(AggregatorInput{
		Leaves: []leave.Request{
			{
				State:             leave.StateValidate,
				DateFrom:          time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC),
				DateTo:            time.Date(2025, time.March, 12, 13, 0, 0, 0, time.UTC),
				WorkEntryTypeCode: &code,
			},
		},
		Calendar: weekdayCalendar(),
		Location: loc,
		From:     from,
		To:       to,
	})

	// Two calendar days at 8h each, partial days rounded up.
	assert.InDelta(t, 2.0, ledger[code].Days, 1e-9)
	assert.InDelta(t, 16.0, ledger[code].Hours, 1e-9)
}

func TestBuildLedgerUnjustifiedDays(t *testing.T) {
	loc := testLocation(t)
	// Monday through Friday with a single work entry on Monday.
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	ledger := BuildLedger(AggregatorInput{
		Entries: []payroll.WorkEntry{
			workEntry(payroll.CodeWork100,
				time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC),
				time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)),
		},
		Calendar: weekdayCalendar(),
		Location: loc,
		From:     from,
		To:       to,
	})

	assert.InDelta(t, 4.0, ledger[payroll.CodeUnjustified].Days, 1e-9)
}
