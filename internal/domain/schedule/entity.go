package schedule

import "time"

// Calendar is a working-time template. Timezone is the IANA zone the
// calendar lines are expressed in.
type Calendar struct {
	ID          string
	CompanyID   string
	Name        string
	Timezone    string
	HoursPerDay float64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lines []CalendarLine
}

// DayPeriod enum
type DayPeriod string

const (
	DayPeriodMorning   DayPeriod = "morning"
	DayPeriodAfternoon DayPeriod = "afternoon"
	DayPeriodNight     DayPeriod = "night"
)

// CalendarLine is one recurring interval: DayOfWeek 0 = Monday through
// 6 = Sunday, hours as fractional wall-clock values (8.5 = 08:30).
type CalendarLine struct {
	ID         string
	CalendarID string
	DayOfWeek  int
	HourFrom   float64
	HourTo     float64
	DayPeriod  DayPeriod
}

// FirstIntervalStart returns the earliest HourFrom among the lines of the
// given weekday, and false when the day has no lines (a day off).
func (c Calendar) FirstIntervalStart(dayOfWeek int) (float64, bool) {
	found := false
	var first float64
	for _, line := range c.Lines {
		if line.DayOfWeek != dayOfWeek {
			continue
		}
		if !found || line.HourFrom < first {
			first = line.HourFrom
			found = true
		}
	}
	return first, found
}

// IsWorkday reports whether the calendar has any interval on the weekday.
func (c Calendar) IsWorkday(dayOfWeek int) bool {
	for _, line := range c.Lines {
		if line.DayOfWeek == dayOfWeek {
			return true
		}
	}
	return false
}

// WeekdayIndex converts time.Weekday to the calendar convention where
// Monday is 0.
func WeekdayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
