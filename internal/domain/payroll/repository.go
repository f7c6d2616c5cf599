package payroll

import (
	"context"
	"time"
)

// WorkEntryTypeRepository is the work entry type catalog.
type WorkEntryTypeRepository interface {
	GetByCode(ctx context.Context, code string, companyID string) (WorkEntryType, error)
	ListByCompany(ctx context.Context, companyID string) ([]WorkEntryType, error)
}

// WorkEntryRepository defines data access for work entries.
// All methods include companyID parameter to prevent cross-company data access.
type WorkEntryRepository interface {
	Create(ctx context.Context, entry WorkEntry) (WorkEntry, error)
	// ListOverlapping returns validated work entries of the contract touching
	// [from, to), joined with their type code and category.
	ListOverlapping(ctx context.Context, contractID string, from, to time.Time, companyID string) ([]WorkEntry, error)
	DeleteByContractAndRange(ctx context.Context, contractID string, from, to time.Time, companyID string) error
}

// PayslipRepository defines data access for payslips and runs.
type PayslipRepository interface {
	CreatePayslip(ctx context.Context, slip Payslip) (Payslip, error)
	GetPayslipByID(ctx context.Context, id string, companyID string) (Payslip, error)
	UpdatePayslip(ctx context.Context, slip Payslip) error
	ListPayslipsByRun(ctx context.Context, runID string, companyID string) ([]Payslip, error)
	ListPayslips(ctx context.Context, filter PayslipFilter, companyID string) ([]Payslip, int64, error)

	ReplaceWorkedDays(ctx context.Context, payslipID string, lines []WorkedDayLine) error
	GetWorkedDays(ctx context.Context, payslipID string, companyID string) ([]WorkedDayLine, error)

	CreateRun(ctx context.Context, run PayslipRun) (PayslipRun, error)
	GetRunByID(ctx context.Context, id string, companyID string) (PayslipRun, error)
}
