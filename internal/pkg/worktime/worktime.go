// Package worktime splits attendance intervals into day and night hours and
// provides the small calendar helpers the payroll aggregation relies on.
// Timestamps are stored in UTC and converted into the employee timezone
// before any hour-of-day decision is made.
package worktime

import (
	"errors"
	"time"
)

var ErrUnknownTimezone = errors.New("unknown timezone")

// NightWindow is the wall-clock span that counts as night work. StartHour is
// on the evening side, EndHour on the morning side of midnight.
type NightWindow struct {
	StartHour int
	EndHour   int
}

// DefaultNightWindow is the statutory night span, 20:00 through 06:00.
var DefaultNightWindow = NightWindow{StartHour: 20, EndHour: 6}

// LoadLocation resolves an IANA timezone name, wrapping the failure in
// ErrUnknownTimezone so callers can map it to a client error.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Join(ErrUnknownTimezone, err)
	}
	return loc, nil
}

// NightHoursBetween returns the hours of [start, end) that fall inside the
// night window, evaluated against local wall-clock time in loc. The interval
// is clipped day by day so spans longer than 24h and spans crossing midnight
// are both handled.
func NightHoursBetween(start, end time.Time, loc *time.Location, win NightWindow) float64 {
	if !end.After(start) {
		return 0
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	// A night interval anchored on day d runs d@StartHour .. d+1@EndHour.
	// The interval starting on the day before localStart can still overlap.
	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
	day = day.AddDate(0, 0, -1)
	lastDay := time.Date(localEnd.Year(), localEnd.Month(), localEnd.Day(), 0, 0, 0, 0, loc)

	var night time.Duration
	for !day.After(lastDay) {
		nightStart := time.Date(day.Year(), day.Month(), day.Day(), win.StartHour, 0, 0, 0, loc)
		next := day.AddDate(0, 0, 1)
		nightEnd := time.Date(next.Year(), next.Month(), next.Day(), win.EndHour, 0, 0, 0, loc)

		night += overlap(localStart, localEnd, nightStart, nightEnd)
		day = next
	}

	return night.Hours()
}

// SplitDayNight returns the day and night hours of [start, end).
func SplitDayNight(start, end time.Time, loc *time.Location, win NightWindow) (float64, float64) {
	if !end.After(start) {
		return 0, 0
	}
	total := end.Sub(start).Hours()
	night := NightHoursBetween(start, end, loc, win)
	return total - night, night
}

// IsNightCheckIn reports whether a check-in time falls inside the night
// window. Guard shifts are classified wholesale from the check-in hour.
func IsNightCheckIn(checkIn time.Time, loc *time.Location, win NightWindow) bool {
	h := checkIn.In(loc).Hour()
	if win.StartHour > win.EndHour {
		return h >= win.StartHour || h < win.EndHour
	}
	return h >= win.StartHour && h < win.EndHour
}

// CalendarDaysBetween counts days from from through to inclusive, in the
// given location. A leave starting and ending on the same date is one day.
func CalendarDaysBetween(from, to time.Time, loc *time.Location) int {
	f := from.In(loc)
	t := to.In(loc)
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if td.Before(fd) {
		return 0
	}
	return int(td.Sub(fd).Hours()/24) + 1
}

// ClipInterval clips [start, end) to [lo, hi) and reports whether anything
// remains.
func ClipInterval(start, end, lo, hi time.Time) (time.Time, time.Time, bool) {
	if start.Before(lo) {
		start = lo
	}
	if end.After(hi) {
		end = hi
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// DatesCovered lists the local calendar dates touched by [start, end),
// normalized to midnight UTC so they can be used as map keys.
func DatesCovered(start, end time.Time, loc *time.Location) []time.Time {
	if !end.After(start) {
		return nil
	}
	s := start.In(loc)
	e := end.Add(-time.Nanosecond).In(loc)
	d := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)

	var dates []time.Time
	for !d.After(last) {
		dates = append(dates, d)
		d = d.AddDate(0, 0, 1)
	}
	return dates
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
