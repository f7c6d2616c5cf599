package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn      = errors.New("you have an open attendance session")
	ErrNotCheckedIn          = errors.New("you have no open attendance session")
	ErrCheckOutBeforeCheckIn = errors.New("check-out cannot be before check-in")
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAttendanceOpen        = errors.New("attendance session is still open")
	ErrAlreadyProcessed      = errors.New("attendance has already been approved or refused")
	ErrInvalidOvertimeHours  = errors.New("validated overtime hours exceed the worked hours")
	ErrUnauthorized          = errors.New("unauthorized to access this attendance record")
)
