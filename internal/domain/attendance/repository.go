package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access.
type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)
	Update(ctx context.Context, a Attendance) error

	// GetOpenSession returns the employee's attendance without a check-out.
	GetOpenSession(ctx context.Context, employeeID string, companyID string) (Attendance, error)

	// ListClosedBetween returns closed sessions with check-in inside
	// [from, to], oldest first. Payroll aggregation reads from here.
	ListClosedBetween(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Attendance, error)

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)
}
