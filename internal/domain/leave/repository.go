package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository is the leave type catalog.
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (LeaveType, error)
	ListByCompany(ctx context.Context, companyID string) ([]LeaveType, error)
}

// RequestRepository defines data access for leave requests.
// All methods include companyID parameter to prevent cross-company data access.
type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string, companyID string) (Request, error)
	Update(ctx context.Context, r Request) error

	// ListValidatedOverlapping returns validated leaves of the employee
	// touching [from, to], joined with the type's work entry code.
	ListValidatedOverlapping(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Request, error)

	// HasOverlapping reports whether a non-refused, non-cancelled request
	// of the employee touches [from, to].
	HasOverlapping(ctx context.Context, employeeID string, from, to time.Time, companyID string) (bool, error)

	// TakenDays sums the days of validated requests of the type inside the
	// allocation period.
	TakenDays(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time, companyID string) (float64, error)

	List(ctx context.Context, filter HistoryFilter, companyID string) ([]Request, int64, error)
}

// AllocationRepository defines data access for leave allocations.
type AllocationRepository interface {
	Create(ctx context.Context, a Allocation) (Allocation, error)
	GetByID(ctx context.Context, id string, companyID string) (Allocation, error)
	Update(ctx context.Context, a Allocation) error

	// GetForPeriod returns the allocation of the employee and type whose
	// period starts on dateFrom, for idempotent generation.
	GetForPeriod(ctx context.Context, employeeID, leaveTypeID string, dateFrom time.Time, companyID string) (*Allocation, error)

	// ListByEmployee returns allocations newest period first, with
	// LeavesTaken populated.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Allocation, error)

	// ListPendingLiquidation returns validated allocations whose
	// liquidation date has passed, with LeavesTaken populated.
	ListPendingLiquidation(ctx context.Context, asOf time.Time, companyID string) ([]Allocation, error)

	ListByCompany(ctx context.Context, companyID string) ([]Allocation, error)
}
