package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens an attendance session and derives the scheduled
	// check-in and late minutes from the active contract's calendar.
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the open session.
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// ApproveLate confirms the late minutes so they deduct on the payslip.
	ApproveLate(ctx context.Context, id string) (AttendanceResponse, error)

	// RefuseLate clears the pending late minutes.
	RefuseLate(ctx context.Context, id string) (AttendanceResponse, error)

	// ApproveOvertime validates a number of overtime hours, measured
	// backwards from check-out.
	ApproveOvertime(ctx context.Context, req ApproveOvertimeRequest) (AttendanceResponse, error)

	// RefuseOvertime clears the pending overtime.
	RefuseOvertime(ctx context.Context, id string) (AttendanceResponse, error)

	// GetAttendance retrieves a single record by ID.
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves records with filters (admin/manager).
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
