package attendance

import (
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestApplyLateness(t *testing.T) {
	scheduled := time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		checkIn     time.Time
		threshold   int
		wantMinutes float64
		wantLate    bool
	}{
		{
			name:    "on time",
			checkIn: scheduled,
		},
		{
			name:    "early check-in clamps to zero",
			checkIn: scheduled.Add(-20 * time.Minute),
		},
		{
			name:        "below threshold still records the minutes",
			checkIn:     scheduled.Add(10 * time.Minute),
			threshold:   15,
			wantMinutes: 10,
		},
		{
			name:        "past threshold flags the session late",
			checkIn:     scheduled.Add(30 * time.Minute),
			threshold:   15,
			wantMinutes: 30,
			wantLate:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := attendance.Attendance{CheckIn: tt.checkIn}

			applyLateness(&record, scheduled, tt.threshold)

			assert.InDelta(t, tt.wantMinutes, record.LateMinutes, 1e-9)
			assert.Equal(t, tt.wantLate, record.IsLate)
			if assert.NotNil(t, record.ScheduledCheckIn) {
				assert.True(t, record.ScheduledCheckIn.Equal(scheduled))
			}
		})
	}
}
