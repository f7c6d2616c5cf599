package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asuncion(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadLocation("America/Asuncion")
	require.NoError(t, err)
	return loc
}

func localUTC(loc *time.Location, y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, loc).UTC()
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		wantErr bool
	}{
		{name: "valid timezone", tz: "America/Asuncion", wantErr: false},
		{name: "utc", tz: "UTC", wantErr: false},
		{name: "garbage", tz: "Mars/Olympus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLocation(tt.tz)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTimezone)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNightHoursBetween(t *testing.T) {
	loc := asuncion(t)
	win := DefaultNightWindow

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{
			name:  "fully inside day",
			start: localUTC(loc, 2025, time.March, 10, 8, 0),
			end:   localUTC(loc, 2025, time.March, 10, 17, 0),
			want:  0,
		},
		{
			name:  "crosses into night",
			start: localUTC(loc, 2025, time.March, 10, 18, 0),
			end:   localUTC(loc, 2025, time.March, 11, 2, 0),
			want:  6,
		},
		{
			name:  "fully inside night",
			start: localUTC(loc, 2025, time.March, 10, 22, 0),
			end:   localUTC(loc, 2025, time.March, 11, 5, 0),
			want:  7,
		},
		{
			name:  "ends exactly at night start",
			start: localUTC(loc, 2025, time.March, 10, 14, 0),
			end:   localUTC(loc, 2025, time.March, 10, 20, 0),
			want:  0,
		},
		{
			name:  "starts exactly at night end",
			start: localUTC(loc, 2025, time.March, 10, 6, 0),
			end:   localUTC(loc, 2025, time.March, 10, 14, 0),
			want:  0,
		},
		{
			name:  "spans more than 24h",
			start: localUTC(loc, 2025, time.March, 10, 12, 0),
			end:   localUTC(loc, 2025, time.March, 11, 12, 0),
			want:  10,
		},
		{
			name:  "early morning tail only",
			start: localUTC(loc, 2025, time.March, 10, 4, 0),
			end:   localUTC(loc, 2025, time.March, 10, 9, 0),
			want:  2,
		},
		{
			name:  "zero length",
			start: localUTC(loc, 2025, time.March, 10, 22, 0),
			end:   localUTC(loc, 2025, time.March, 10, 22, 0),
			want:  0,
		},
		{
			name:  "inverted interval",
			start: localUTC(loc, 2025, time.March, 10, 22, 0),
			end:   localUTC(loc, 2025, time.March, 10, 21, 0),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NightHoursBetween(tt.start, tt.end, loc, win)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSplitDayNight(t *testing.T) {
	loc := asuncion(t)

	// 18:00 to 02:00 local: 2h day, 6h night.
	start := localUTC(loc, 2025, time.March, 10, 18, 0)
	end := localUTC(loc, 2025, time.March, 11, 2, 0)

	day, night := SplitDayNight(start, end, loc, DefaultNightWindow)
	assert.InDelta(t, 2.0, day, 1e-9)
	assert.InDelta(t, 6.0, night, 1e-9)
	assert.InDelta(t, end.Sub(start).Hours(), day+night, 1e-9)
}

func TestIsNightCheckIn(t *testing.T) {
	loc := asuncion(t)
	win := DefaultNightWindow

	tests := []struct {
		name string
		in   time.Time
		want bool
	}{
		{name: "evening check in", in: localUTC(loc, 2025, time.March, 10, 21, 0), want: true},
		{name: "exactly at window start", in: localUTC(loc, 2025, time.March, 10, 20, 0), want: true},
		{name: "early morning", in: localUTC(loc, 2025, time.March, 10, 5, 30), want: true},
		{name: "exactly at window end", in: localUTC(loc, 2025, time.March, 10, 6, 0), want: false},
		{name: "midday", in: localUTC(loc, 2025, time.March, 10, 12, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNightCheckIn(tt.in, loc, win))
		})
	}
}

func TestCalendarDaysBetween(t *testing.T) {
	loc := asuncion(t)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same day",
			from: localUTC(loc, 2025, time.March, 10, 9, 0),
			to:   localUTC(loc, 2025, time.March, 10, 13, 0),
			want: 1,
		},
		{
			name: "three days",
			from: localUTC(loc, 2025, time.March, 10, 9, 0),
			to:   localUTC(loc, 2025, time.March, 12, 13, 0),
			want: 3,
		},
		{
			name: "inverted",
			from: localUTC(loc, 2025, time.March, 12, 9, 0),
			to:   localUTC(loc, 2025, time.March, 10, 13, 0),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalendarDaysBetween(tt.from, tt.to, loc))
		})
	}
}

func TestClipInterval(t *testing.T) {
	lo := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	t.Run("inside stays", func(t *testing.T) {
		s := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
		e := time.Date(2025, time.March, 10, 17, 0, 0, 0, time.UTC)
		gs, ge, ok := ClipInterval(s, e, lo, hi)
		require.True(t, ok)
		assert.Equal(t, s, gs)
		assert.Equal(t, e, ge)
	})

	t.Run("overhang is clipped", func(t *testing.T) {
		s := time.Date(2025, time.February, 28, 20, 0, 0, 0, time.UTC)
		e := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
		gs, ge, ok := ClipInterval(s, e, lo, hi)
		require.True(t, ok)
		assert.Equal(t, lo, gs)
		assert.Equal(t, e, ge)
	})

	t.Run("fully outside disappears", func(t *testing.T) {
		s := time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC)
		e := time.Date(2025, time.January, 10, 17, 0, 0, 0, time.UTC)
		_, _, ok := ClipInterval(s, e, lo, hi)
		assert.False(t, ok)
	})
}

func TestDatesCovered(t *testing.T) {
	loc := asuncion(t)

	start := localUTC(loc, 2025, time.March, 10, 22, 0)
	end := localUTC(loc, 2025, time.March, 11, 6, 0)

	dates := DatesCovered(start, end, loc)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC), dates[1])
}
