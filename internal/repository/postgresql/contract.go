package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type contractRepository struct {
	db *database.DB
}

const contractColumns = `id, employee_id, company_id, calendar_id, wage_type, wage, hourly_wage,
		   date_start, date_end, state, created_at, updated_at`

func scanContract(row pgx.Row) (employee.Contract, error) {
	var c employee.Contract
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CompanyID, &c.CalendarID, &c.WageType, &c.Wage, &c.HourlyWage,
		&c.DateStart, &c.DateEnd, &c.State, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// GetByID implements employee.ContractRepository.
func (r *contractRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE id = $1
		  AND company_id = $2
	`

	c, err := scanContract(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Contract{}, employee.ErrContractNotFound
		}
		return employee.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}

	return c, nil
}

// GetActiveForEmployee implements employee.ContractRepository.
func (r *contractRepository) GetActiveForEmployee(ctx context.Context, employeeID string, date time.Time, companyID string) (employee.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE employee_id = $1
		  AND company_id = $2
		  AND state = 'open'
		  AND date_start <= $3
		  AND (date_end IS NULL OR date_end >= $3)
		ORDER BY date_start DESC
		LIMIT 1
	`

	c, err := scanContract(q.QueryRow(ctx, query, employeeID, companyID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Contract{}, employee.ErrContractNotFound
		}
		return employee.Contract{}, fmt.Errorf("failed to get active contract: %w", err)
	}

	return c, nil
}

// ListActiveInRange implements employee.ContractRepository.
func (r *contractRepository) ListActiveInRange(ctx context.Context, from, to time.Time, companyID string) ([]employee.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE company_id = $1
		  AND state = 'open'
		  AND date_start <= $3
		  AND (date_end IS NULL OR date_end >= $2)
		ORDER BY date_start
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var result []employee.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

func NewContractRepository(db *database.DB) employee.ContractRepository {
	return &contractRepository{db: db}
}
