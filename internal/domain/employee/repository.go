package employee

import (
	"context"
	"time"
)

// EmployeeRepository defines data access methods for employees.
// All methods include companyID parameter to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	ListActive(ctx context.Context, companyID string) ([]Employee, error)
}

// ContractRepository defines data access methods for contracts.
type ContractRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Contract, error)
	// GetActiveForEmployee returns the open contract in force on date.
	GetActiveForEmployee(ctx context.Context, employeeID string, date time.Time, companyID string) (Contract, error)
	// ListActiveInRange returns open contracts overlapping [from, to].
	ListActiveInRange(ctx context.Context, from, to time.Time, companyID string) ([]Contract, error)
}
