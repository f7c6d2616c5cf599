package payroll

import (
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/domain/schedule"
	"github.com/nominapy/payroll-backend-go/internal/pkg/worktime"
)

// AggregatorInput carries everything BuildLedger needs, already loaded.
type AggregatorInput struct {
	Entries        []payroll.WorkEntry
	Leaves         []leave.Request
	Classification Classification
	Calendar       schedule.Calendar
	Location       *time.Location
	From           time.Time
	To             time.Time
}

// BuildLedger turns the period's raw activity into per-code buckets:
//
//  1. non-leave work entries are summed per type code, clipped to the window;
//  2. guard and overtime totals move from the default bucket into their own;
//  3. validated leaves contribute calendar-day overlaps at 8 hours per day,
//     a partial day counting as a full one;
//  4. workable dates with no activity at all become unjustified absences.
//
// The WORK100 key is always present, even for an empty period.
func BuildLedger(in AggregatorInput) payroll.Ledger {
	ledger := payroll.Ledger{}
	ledger[payroll.CodeWork100] = payroll.Bucket{}

	hoursPerDay := in.Calendar.HoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = 8.0
	}

	covered := map[time.Time]bool{}

	// 1. Work entries, leaves excluded here.
	for _, e := range in.Entries {
		if e.TypeIsLeave != nil && *e.TypeIsLeave {
			continue
		}
		start, end, ok := worktime.ClipInterval(e.DateStart, e.DateStop, in.From, in.To)
		if !ok {
			continue
		}
		hours := end.Sub(start).Hours()
		if hours < 0 {
			hours = 0
		}
		code := payroll.CodeWork100
		if e.TypeCode != nil {
			code = *e.TypeCode
		}
		ledger.Add(code, hours, hours/hoursPerDay)

		for _, d := range worktime.DatesCovered(start, end, in.Location) {
			covered[d] = true
		}
	}

	// 2. Guard and overtime partitions come out of the default bucket.
	cls := in.Classification
	shifted := cls.GuardHours() + cls.OvertimeHours()
	if shifted > 0 {
		base := ledger[payroll.CodeWork100]
		base.Hours -= shifted
		base.Days -= shifted / hoursPerDay
		if base.Hours < 0 {
			base.Hours = 0
		}
		if base.Days < 0 {
			base.Days = 0
		}
		ledger[payroll.CodeWork100] = base
	}

	if cls.OvertimeDayHours > 0 {
		ledger.Add(payroll.CodeOvertimeDay, cls.OvertimeDayHours, 0)
	}
	if cls.OvertimeNightHours > 0 {
		ledger.Add(payroll.CodeOvertimeNight, cls.OvertimeNightHours, 0)
	}
	if cls.GuardDayShifts > 0 {
		ledger.Add(payroll.CodeGuardDay, cls.GuardDayHours, float64(cls.GuardDayShifts))
	}
	if cls.GuardNightShifts > 0 {
		ledger.Add(payroll.CodeGuardNight, cls.GuardNightHours, float64(cls.GuardNightShifts))
	}
	if cls.NightSurchargeHours > 0 {
		ledger.Add(payroll.CodeRecargo, cls.NightSurchargeHours, 0)
	}
	if cls.LateHours > 0 {
		ledger.Add(payroll.CodeLate, cls.LateHours, 0)
	}

	// 3. Validated leaves, counted in calendar days. Leave boundaries are
	// date-level values, never instants, so they stay in UTC.
	for _, l := range in.Leaves {
		if l.State != leave.StateValidate {
			continue
		}
		from := l.DateFrom
		if from.Before(in.From) {
			from = in.From
		}
		to := l.DateTo
		if to.After(in.To) {
			to = in.To
		}
		days := worktime.CalendarDaysBetween(from, to, time.UTC)
		if days <= 0 {
			continue
		}
		code := payroll.CodeWork100
		if l.WorkEntryTypeCode != nil {
			code = *l.WorkEntryTypeCode
		}
		ledger.Add(code, float64(days)*8.0, float64(days))

		d := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		for i := 0; i < days; i++ {
			covered[d.AddDate(0, 0, i)] = true
		}
	}

	// 4. Unjustified absences: workable dates nothing accounts for.
	unjustified := 0
	first := time.Date(in.From.Year(), in.From.Month(), in.From.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(in.To.Year(), in.To.Month(), in.To.Day(), 0, 0, 0, 0, time.UTC)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if covered[d] {
			continue
		}
		if !in.Calendar.IsWorkday(schedule.WeekdayIndex(d.Weekday())) {
			continue
		}
		unjustified++
	}
	if unjustified > 0 {
		ledger.Add(payroll.CodeUnjustified, float64(unjustified)*hoursPerDay, float64(unjustified))
	}

	return ledger
}
