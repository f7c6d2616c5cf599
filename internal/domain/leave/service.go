package leave

import "context"

// RequestService defines business logic for self-service leave requests.
type RequestService interface {
	// Submit files a leave request for the authenticated employee,
	// storing the attachment when present.
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)

	// Approve moves a request to validate so it feeds the payroll ledger.
	Approve(ctx context.Context, id string) (LeaveResponse, error)

	// Refuse rejects a pending request.
	Refuse(ctx context.Context, id string) (LeaveResponse, error)

	// History lists the employee's requests, newest first, with free-text
	// and status filters.
	History(ctx context.Context, filter HistoryFilter) (ListLeaveResponse, error)

	// Balance summarizes remaining days per leave type.
	Balance(ctx context.Context, employeeID string) ([]BalanceResponse, error)
}

// AllocationService defines business logic for allocations and liquidation.
type AllocationService interface {
	// Generate creates the current-period allocation for each employee,
	// idempotently. With no explicit IDs it covers every active employee.
	Generate(ctx context.Context, req GenerateAllocationsRequest) (GenerateResult, error)

	// GenerateForCompany is Generate with an explicit company, for callers
	// outside a request context such as the scheduler.
	GenerateForCompany(ctx context.Context, companyID string, employeeIDs []string) (GenerateResult, error)

	// List returns the company's allocations with balances.
	List(ctx context.Context) ([]AllocationResponse, error)

	// Liquidate converts the untaken balance of one allocation into an
	// auto-validated consecutive leave.
	Liquidate(ctx context.Context, allocationID string) (LeaveResponse, error)

	// LiquidateAll runs Liquidate over every due allocation, sequentially,
	// collecting per-item failures.
	LiquidateAll(ctx context.Context) (BulkLiquidationResult, error)
}

// GenerateResult summarizes an idempotent allocation generation pass.
type GenerateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
