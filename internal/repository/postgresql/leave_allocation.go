package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type leaveAllocationRepository struct {
	db *database.DB
}

// takenDaysSubquery sums validated leave days of the allocation's type whose
// start falls inside the allocation period.
const allocationColumns = `la.id, la.employee_id, la.company_id, la.leave_type_id,
		   la.number_of_days, la.carried_over_days, la.liquidated_days,
		   la.date_from, la.date_to, la.liquidation_date, la.state,
		   la.created_at, la.updated_at,
		   e.first_name || ' ' || e.last_name AS employee_name,
		   lt.name AS leave_type_name,
		   COALESCE((
			   SELECT SUM(lr.number_of_days)
			   FROM leave_requests lr
			   WHERE lr.employee_id = la.employee_id
				 AND lr.leave_type_id = la.leave_type_id
				 AND lr.state = 'validate'
				 AND lr.date_from >= la.date_from
				 AND lr.date_from <= la.date_to
		   ), 0) AS leaves_taken`

const allocationJoins = `
		FROM leave_allocations la
		JOIN employees e ON e.id = la.employee_id
		JOIN leave_types lt ON lt.id = la.leave_type_id`

func scanAllocation(row pgx.Row) (leave.Allocation, error) {
	var a leave.Allocation
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.LeaveTypeID,
		&a.NumberOfDays, &a.CarriedOverDays, &a.LiquidatedDays,
		&a.DateFrom, &a.DateTo, &a.LiquidationDate, &a.State,
		&a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.LeaveTypeName, &a.LeavesTaken,
	)
	return a, err
}

// Create implements leave.AllocationRepository.
func (r *leaveAllocationRepository) Create(ctx context.Context, a leave.Allocation) (leave.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_allocations (
			employee_id, company_id, leave_type_id, number_of_days,
			carried_over_days, liquidated_days, date_from, date_to,
			liquidation_date, state
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID,
		a.CompanyID,
		a.LeaveTypeID,
		a.NumberOfDays,
		a.CarriedOverDays,
		a.LiquidatedDays,
		a.DateFrom,
		a.DateTo,
		a.LiquidationDate,
		a.State,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return leave.Allocation{}, fmt.Errorf("failed to create allocation: %w", err)
	}

	return a, nil
}

// GetByID implements leave.AllocationRepository.
func (r *leaveAllocationRepository) GetByID(ctx context.Context, id string, companyID string) (leave.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + allocationColumns + allocationJoins + `
		WHERE la.id = $1
		  AND la.company_id = $2
	`

	a, err := scanAllocation(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Allocation{}, leave.ErrAllocationNotFound
		}
		return leave.Allocation{}, fmt.Errorf("failed to get allocation: %w", err)
	}

	return a, nil
}

// Update implements leave.AllocationRepository.
func (r *leaveAllocationRepository) Update(ctx context.Context, a leave.Allocation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_allocations
		SET number_of_days = $1,
			carried_over_days = $2,
			liquidated_days = $3,
			state = $4,
			updated_at = NOW()
		WHERE id = $5
		  AND company_id = $6
	`

	tag, err := q.Exec(ctx, query,
		a.NumberOfDays,
		a.CarriedOverDays,
		a.LiquidatedDays,
		a.State,
		a.ID,
		a.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAllocationNotFound
	}

	return nil
}

// GetForPeriod implements leave.AllocationRepository.
func (r *leaveAllocationRepository) GetForPeriod(ctx context.Context, employeeID, leaveTypeID string, dateFrom time.Time, companyID string) (*leave.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + allocationColumns + allocationJoins + `
		WHERE la.employee_id = $1
		  AND la.leave_type_id = $2
		  AND la.date_from = $3
		  AND la.company_id = $4
		LIMIT 1
	`

	a, err := scanAllocation(q.QueryRow(ctx, query, employeeID, leaveTypeID, dateFrom, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get allocation for period: %w", err)
	}

	return &a, nil
}

// ListByEmployee implements leave.AllocationRepository.
func (r *leaveAllocationRepository) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]leave.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + allocationColumns + allocationJoins + `
		WHERE la.employee_id = $1
		  AND la.company_id = $2
		ORDER BY la.date_from DESC
	`

	return r.queryAllocations(ctx, q, query, employeeID, companyID)
}

// ListPendingLiquidation implements leave.AllocationRepository.
func (r *leaveAllocationRepository) ListPendingLiquidation(ctx context.Context, asOf time.Time, companyID string) ([]leave.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + allocationColumns + allocationJoins + `
		WHERE la.company_id = $1
		  AND la.state = 'validate'
		  AND la.liquidation_date <= $2
		ORDER BY la.liquidation_date
	`

	return r.queryAllocations(ctx, q, query, companyID, asOf)
}

// ListByCompany implements leave.AllocationRepository.
func (r *leaveAllocationRepository) ListByCompany(ctx context.Context, companyID string) ([]leave.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + allocationColumns + allocationJoins + `
		WHERE la.company_id = $1
		ORDER BY e.last_name, e.first_name, la.date_from DESC
	`

	return r.queryAllocations(ctx, q, query, companyID)
}

func (r *leaveAllocationRepository) queryAllocations(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Allocation, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var result []leave.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

func NewLeaveAllocationRepository(db *database.DB) leave.AllocationRepository {
	return &leaveAllocationRepository{db: db}
}
