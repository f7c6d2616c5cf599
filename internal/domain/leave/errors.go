package leave

import "errors"

var (
	ErrLeaveNotFound           = errors.New("leave request not found")
	ErrLeaveTypeNotFound       = errors.New("leave type not found")
	ErrAllocationNotFound      = errors.New("allocation not found")
	ErrOverlappingLeave        = errors.New("leave overlaps an existing request")
	ErrInsufficientBalance     = errors.New("insufficient leave balance")
	ErrNothingToLiquidate      = errors.New("no days available to liquidate")
	ErrLeaveAlreadyProcessed   = errors.New("leave request has already been processed")
	ErrAllocationAlreadyExists = errors.New("allocation already exists for this period")
	ErrLiquidationNotDue       = errors.New("liquidation date has not passed yet")
	ErrNoLiquidationLeaveType  = errors.New("liquidation leave type is not configured")
)
