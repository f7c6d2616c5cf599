package schedule

import "errors"

var (
	ErrCalendarNotFound = errors.New("working calendar not found")
)
