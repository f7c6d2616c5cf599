package schedule

import "context"

// CalendarRepository defines data access for working calendars.
type CalendarRepository interface {
	// GetByID returns the calendar with its lines loaded.
	GetByID(ctx context.Context, id string, companyID string) (Calendar, error)
}
