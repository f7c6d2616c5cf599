package payroll

import (
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/attendance"
	"github.com/nominapy/payroll-backend-go/internal/pkg/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := worktime.LoadLocation("America/Asuncion")
	require.NoError(t, err)
	return loc
}

func at(loc *time.Location, y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, loc).UTC()
}

func closed(checkIn, checkOut time.Time) attendance.Attendance {
	return attendance.Attendance{
		CheckIn:        checkIn,
		CheckOut:       &checkOut,
		OvertimeStatus: attendance.ApprovalToApprove,
		LateStatus:     attendance.ApprovalToApprove,
	}
}

func TestClassifyRegularShiftNoExtras(t *testing.T) {
	loc := testLocation(t)

	a := closed(
		at(loc, 2025, time.March, 10, 8, 0),
		at(loc, 2025, time.March, 10, 17, 0),
	)

	cls := Classify([]attendance.Attendance{a}, loc, worktime.DefaultNightWindow)

	assert.Zero(t, cls.OvertimeHours())
	assert.Zero(t, cls.GuardHours())
	assert.Zero(t, cls.NightSurchargeHours)
	assert.Zero(t, cls.LateHours)
}

func TestClassifyOvertimeSplit(t *testing.T) {
	loc := testLocation(t)

	// Shift 14:00 to 02:00 with the last 8 hours approved as overtime:
	// overtime runs 18:00 to 02:00, splitting 2h day and 6h night. The
	// remaining 14:00 to 18:00 portion has no night surcharge.
	a := closed(
		at(loc, 2025, time.March, 10, 14, 0),
		at(loc, 2025, time.March, 11, 2, 0),
	)
	a.OvertimeStatus = attendance.ApprovalApproved
	a.ValidatedOvertimeHours = 8

	cls := Classify([]attendance.Attendance{a}, loc, worktime.DefaultNightWindow)

	assert.InDelta(t, 2.0, cls.OvertimeDayHours, 1e-9)
	assert.InDelta(t, 6.0, cls.OvertimeNightHours, 1e-9)
	assert.Zero(t, cls.NightSurchargeHours)
}

func TestClassifyNightSurchargeExcludesOvertime(t *testing.T) {
	loc := testLocation(t)

	// Shift 18:00 to 04:00, 2 approved overtime hours at the tail. The
	// surcharge covers 18:00 to 02:00 (6 night hours), the overtime covers
	// 02:00 to 04:00 entirely at night.
	a := closed(
		at(loc, 2025, time.March, 10, 18, 0),
		at(loc, 2025, time.March, 11, 4, 0),
	)
	a.OvertimeStatus = attendance.ApprovalApproved
	a.ValidatedOvertimeHours = 2

	cls := Classify([]attendance.Attendance{a}, loc, worktime.DefaultNightWindow)

	assert.InDelta(t, 6.0, cls.NightSurchargeHours, 1e-9)
	assert.InDelta(t, 2.0, cls.OvertimeNightHours, 1e-9)
	assert.Zero(t, cls.OvertimeDayHours)
}

func TestClassifyUnapprovedOvertimeTailExcluded(t *testing.T) {
	loc := testLocation(t)

	a := closed(
		at(loc, 2025, time.March, 10, 18, 0),
		at(loc, 2025, time.March, 11, 4, 0),
	)
	a.ValidatedOvertimeHours = 2 // still to_approve

	cls := Classify([]attendance.Attendance{a}, loc, worktime.DefaultNightWindow)

	// Pending overtime pays nothing, but its tail still does not earn the
	// surcharge: only 18:00 to 02:00 counts, giving 6 night hours.
	assert.Zero(t, cls.OvertimeHours())
	assert.InDelta(t, 6.0, cls.NightSurchargeHours, 1e-9)
}

func TestClassifyGuardWholeShift(t *testing.T) {
	loc := testLocation(t)

	tests := []struct {
		name          string
		checkIn       time.Time
		checkOut      time.Time
		wantNight     int
		wantDay       int
		wantHours     float64
		wantSurcharge float64
	}{
		{
			name:          "night guard crossing midnight counts whole",
			checkIn:       at(loc, 2025, time.March, 10, 21, 0),
			checkOut:      at(loc, 2025, time.March, 11, 7, 0),
			wantNight:     1,
			wantHours:     10,
			wantSurcharge: 9,
		},
		{
			name:          "guard inside the night window",
			checkIn:       at(loc, 2025, time.March, 10, 21, 0),
			checkOut:      at(loc, 2025, time.March, 11, 5, 0),
			wantNight:     1,
			wantHours:     8,
			wantSurcharge: 8,
		},
		{
			name:          "early morning check-in is a night guard",
			checkIn:       at(loc, 2025, time.March, 10, 5, 0),
			checkOut:      at(loc, 2025, time.March, 10, 13, 0),
			wantNight:     1,
			wantHours:     8,
			wantSurcharge: 1,
		},
		{
			name:          "daytime guard",
			checkIn:       at(loc, 2025, time.March, 10, 8, 0),
			checkOut:      at(loc, 2025, time.March, 10, 20, 0),
			wantDay:       1,
			wantHours:     12,
			wantSurcharge: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := closed(tt.checkIn, tt.checkOut)
			a.IsGuard = true

			cls := Classify([]attendance.Attendance{a}, loc, worktime.DefaultNightWindow)

			assert.Equal(t, tt.wantNight, cls.GuardNightShifts)
			assert.Equal(t, tt.wantDay, cls.GuardDayShifts)
			assert.InDelta(t, tt.wantHours, cls.GuardHours(), 1e-9)
			// Guards never split into overtime, but their night hours still
			// earn the surcharge.
			assert.InDelta(t, tt.wantSurcharge, cls.NightSurchargeHours, 1e-9)
			assert.Zero(t, cls.OvertimeHours())
		})
	}
}

func TestClassifyOpenSessionSkipped(t *testing.T) {
	loc := testLocation(t)

	a := attendance.Attendance{
		CheckIn:                at(loc, 2025, time.March, 10, 21, 0),
		IsGuard:                true,
		OvertimeStatus:         attendance.ApprovalApproved,
		ValidatedOvertimeHours: 4,
		LateStatus:             attendance.ApprovalToApprove,
	}

	cls := Classify([]attendance.Attendance{a}, loc, worktime.DefaultNightWindow)

	assert.Zero(t, cls.GuardNightShifts)
	assert.Zero(t, cls.OvertimeHours())
}

func TestClassifyConfirmedLateMinutes(t *testing.T) {
	loc := testLocation(t)

	approved := closed(
		at(loc, 2025, time.March, 10, 8, 30),
		at(loc, 2025, time.March, 10, 17, 0),
	)
	approved.LateStatus = attendance.ApprovalApproved
	approved.ConfirmedLateMinutes = 30

	refused := closed(
		at(loc, 2025, time.March, 11, 8, 45),
		at(loc, 2025, time.March, 11, 17, 0),
	)
	refused.LateStatus = attendance.ApprovalRefused
	refused.ConfirmedLateMinutes = 45

	cls := Classify([]attendance.Attendance{approved, refused}, loc, worktime.DefaultNightWindow)

	assert.InDelta(t, 0.5, cls.LateHours, 1e-9)
}
