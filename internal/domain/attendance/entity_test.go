package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func closedSession(checkIn time.Time, hours float64) Attendance {
	out := checkIn.Add(time.Duration(hours * float64(time.Hour)))
	return Attendance{CheckIn: checkIn, CheckOut: &out}
}

func TestWorkedHours(t *testing.T) {
	in := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)

	a := closedSession(in, 9.5)
	assert.InDelta(t, 9.5, a.WorkedHours(), 0.0001)

	open := Attendance{CheckIn: in}
	assert.Zero(t, open.WorkedHours())
	assert.True(t, open.IsOpen())
}

func TestOvertimeWindow(t *testing.T) {
	in := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)

	a := closedSession(in, 10)
	a.OvertimeStatus = ApprovalApproved
	a.ValidatedOvertimeHours = 2

	start, end, ok := a.OvertimeWindow()
	assert.True(t, ok)
	assert.Equal(t, *a.CheckOut, end)
	assert.Equal(t, a.CheckOut.Add(-2*time.Hour), start)
}

func TestOvertimeWindowRequiresApproval(t *testing.T) {
	in := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)

	a := closedSession(in, 10)
	a.OvertimeStatus = ApprovalToApprove
	a.ValidatedOvertimeHours = 2

	_, _, ok := a.OvertimeWindow()
	assert.False(t, ok)
}

func TestOvertimeWindowClampsToCheckIn(t *testing.T) {
	in := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)

	a := closedSession(in, 1)
	a.OvertimeStatus = ApprovalApproved
	a.ValidatedOvertimeHours = 3

	start, _, ok := a.OvertimeWindow()
	assert.True(t, ok)
	assert.Equal(t, a.CheckIn, start)
}
