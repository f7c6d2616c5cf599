package payroll

import "context"

// PayslipService defines business logic for payslip computation and runs.
type PayslipService interface {
	// ComputePayslip builds (or rebuilds) the worked-days lines and amounts
	// for one employee over a period.
	ComputePayslip(ctx context.Context, req ComputePayslipRequest) (PayslipResponse, error)

	// GetWorkedDays returns the computed lines of a payslip.
	GetWorkedDays(ctx context.Context, payslipID string) ([]WorkedDayLineResponse, error)

	// GetPayslip retrieves a single payslip with its lines.
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)

	// ListPayslips retrieves payslips with filters.
	ListPayslips(ctx context.Context, filter PayslipFilter) ([]PayslipResponse, int64, error)

	// CreateRun opens a payslip run for a period.
	CreateRun(ctx context.Context, req CreateRunRequest) (PayslipRunResponse, error)

	// ComputeRun computes payslips for every employee with an active
	// contract in the run period. Failures are collected, not fatal.
	ComputeRun(ctx context.Context, runID string) (ComputeRunResult, error)
}

// ComputeRunResult summarizes a best-effort batch computation.
type ComputeRunResult struct {
	Computed int               `json:"computed"`
	Failed   int               `json:"failed"`
	Errors   []ComputeRunError `json:"errors,omitempty"`
}

type ComputeRunError struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}
