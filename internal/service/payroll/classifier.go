package payroll

import (
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/attendance"
	"github.com/nominapy/payroll-backend-go/internal/pkg/worktime"
)

// Classification is the attendance-derived breakdown of a payslip period.
// Guard shifts are counted whole, overtime is split day/night, and the night
// surcharge covers the non-overtime portion of every closed shift.
type Classification struct {
	OvertimeDayHours   float64
	OvertimeNightHours float64

	GuardDayShifts   int
	GuardNightShifts int
	GuardDayHours    float64
	GuardNightHours  float64

	NightSurchargeHours float64
	LateHours           float64
}

// GuardHours is the total time consumed by guard shifts.
func (c Classification) GuardHours() float64 {
	return c.GuardDayHours + c.GuardNightHours
}

// OvertimeHours is the total approved overtime.
func (c Classification) OvertimeHours() float64 {
	return c.OvertimeDayHours + c.OvertimeNightHours
}

// Classify walks the closed attendance sessions of a period and buckets them.
// Open sessions are skipped entirely. A guard shift is classified wholesale
// by its check-in hour and never splits into overtime. Regular shifts
// contribute approved overtime measured backwards from check-out. Every
// closed shift, guards included, earns the night surcharge over its
// non-overtime portion: any validated overtime tail is carved off the end of
// the surcharge interval whether or not it has been approved yet. Confirmed
// late minutes accumulate separately.
func Classify(atts []attendance.Attendance, loc *time.Location, win worktime.NightWindow) Classification {
	var cls Classification

	for _, a := range atts {
		if a.IsOpen() {
			continue
		}

		if a.LateStatus == attendance.ApprovalApproved && a.ConfirmedLateMinutes > 0 {
			cls.LateHours += a.ConfirmedLateMinutes / 60.0
		}

		if a.IsGuard {
			hours := a.WorkedHours()
			if worktime.IsNightCheckIn(a.CheckIn, loc, win) {
				cls.GuardNightShifts++
				cls.GuardNightHours += hours
			} else {
				cls.GuardDayShifts++
				cls.GuardDayHours += hours
			}
		} else if otStart, otEnd, ok := a.OvertimeWindow(); ok {
			day, night := worktime.SplitDayNight(otStart, otEnd, loc, win)
			cls.OvertimeDayHours += day
			cls.OvertimeNightHours += night
		}

		surchargeEnd := *a.CheckOut
		if a.ValidatedOvertimeHours > 0 {
			surchargeEnd = surchargeEnd.Add(-time.Duration(a.ValidatedOvertimeHours * float64(time.Hour)))
			if surchargeEnd.Before(a.CheckIn) {
				surchargeEnd = a.CheckIn
			}
		}

		cls.NightSurchargeHours += worktime.NightHoursBetween(a.CheckIn, surchargeEnd, loc, win)
	}

	return cls
}
