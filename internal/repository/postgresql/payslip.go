package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

const payslipColumns = `p.id, p.number, p.employee_id, p.contract_id, p.company_id, p.run_id,
		   p.date_from, p.date_to, p.state, p.wage_type, p.gross, p.net,
		   p.created_at, p.updated_at,
		   e.first_name || ' ' || e.last_name AS employee_name`

const payslipJoins = `
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.Number, &p.EmployeeID, &p.ContractID, &p.CompanyID, &p.RunID,
		&p.DateFrom, &p.DateTo, &p.State, &p.WageType, &p.Gross, &p.Net,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName,
	)
	return p, err
}

// CreatePayslip implements payroll.PayslipRepository.
func (r *payslipRepository) CreatePayslip(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			number, employee_id, contract_id, company_id, run_id,
			date_from, date_to, state, wage_type, gross, net
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		slip.Number,
		slip.EmployeeID,
		slip.ContractID,
		slip.CompanyID,
		slip.RunID,
		slip.DateFrom,
		slip.DateTo,
		slip.State,
		slip.WageType,
		slip.Gross,
		slip.Net,
	).Scan(&slip.ID, &slip.CreatedAt, &slip.UpdatedAt)

	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return slip, nil
}

// GetPayslipByID implements payroll.PayslipRepository.
func (r *payslipRepository) GetPayslipByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + payslipJoins + `
		WHERE p.id = $1
		  AND p.company_id = $2
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

// UpdatePayslip implements payroll.PayslipRepository.
func (r *payslipRepository) UpdatePayslip(ctx context.Context, slip payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET state = $1,
			gross = $2,
			net = $3,
			run_id = $4,
			updated_at = NOW()
		WHERE id = $5
		  AND company_id = $6
	`

	tag, err := q.Exec(ctx, query, slip.State, slip.Gross, slip.Net, slip.RunID, slip.ID, slip.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}

	return nil
}

// ListPayslipsByRun implements payroll.PayslipRepository.
func (r *payslipRepository) ListPayslipsByRun(ctx context.Context, runID string, companyID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + payslipJoins + `
		WHERE p.run_id = $1
		  AND p.company_id = $2
		ORDER BY e.last_name, e.first_name
	`

	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var result []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		result = append(result, p)
	}

	return result, rows.Err()
}

// ListPayslips implements payroll.PayslipRepository.
func (r *payslipRepository) ListPayslips(ctx context.Context, filter payroll.PayslipFilter, companyID string) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"p.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.RunID != "" {
		conditions = append(conditions, fmt.Sprintf("p.run_id = $%d", argIdx))
		args = append(args, filter.RunID)
		argIdx++
	}
	if filter.State != "" {
		conditions = append(conditions, fmt.Sprintf("p.state = $%d", argIdx))
		args = append(args, filter.State)
		argIdx++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("p.date_from >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("p.date_to <= $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + payslipJoins + ` WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	query := fmt.Sprintf(`SELECT `+payslipColumns+payslipJoins+`
		WHERE %s
		ORDER BY p.date_from DESC, e.last_name
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var result []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		result = append(result, p)
	}

	return result, total, rows.Err()
}

// ReplaceWorkedDays implements payroll.PayslipRepository.
func (r *payslipRepository) ReplaceWorkedDays(ctx context.Context, payslipID string, lines []payroll.WorkedDayLine) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payslip_worked_days WHERE payslip_id = $1`, payslipID); err != nil {
		return fmt.Errorf("failed to clear worked days: %w", err)
	}

	query := `
		INSERT INTO payslip_worked_days (
			payslip_id, work_entry_type_id, code, name, category, sequence,
			number_of_days, number_of_hours, amount
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	for _, line := range lines {
		_, err := q.Exec(ctx, query,
			payslipID,
			line.WorkEntryTypeID,
			line.Code,
			line.Name,
			line.Category,
			line.Sequence,
			line.NumberOfDays,
			line.NumberOfHours,
			line.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert worked day line %s: %w", line.Code, err)
		}
	}

	return nil
}

// GetWorkedDays implements payroll.PayslipRepository.
func (r *payslipRepository) GetWorkedDays(ctx context.Context, payslipID string, companyID string) ([]payroll.WorkedDayLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT wd.id, wd.payslip_id, wd.work_entry_type_id, wd.code, wd.name,
			   wd.category, wd.sequence, wd.number_of_days, wd.number_of_hours, wd.amount
		FROM payslip_worked_days wd
		JOIN payslips p ON p.id = wd.payslip_id
		WHERE wd.payslip_id = $1
		  AND p.company_id = $2
		ORDER BY wd.sequence
	`

	rows, err := q.Query(ctx, query, payslipID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worked days: %w", err)
	}
	defer rows.Close()

	var result []payroll.WorkedDayLine
	for rows.Next() {
		var line payroll.WorkedDayLine
		err := rows.Scan(
			&line.ID, &line.PayslipID, &line.WorkEntryTypeID, &line.Code, &line.Name,
			&line.Category, &line.Sequence, &line.NumberOfDays, &line.NumberOfHours, &line.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worked day line: %w", err)
		}
		result = append(result, line)
	}

	return result, rows.Err()
}

// CreateRun implements payroll.PayslipRepository.
func (r *payslipRepository) CreateRun(ctx context.Context, run payroll.PayslipRun) (payroll.PayslipRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslip_runs (company_id, name, date_from, date_to, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		run.CompanyID,
		run.Name,
		run.DateFrom,
		run.DateTo,
		run.State,
	).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)

	if err != nil {
		return payroll.PayslipRun{}, fmt.Errorf("failed to create payslip run: %w", err)
	}

	return run, nil
}

// GetRunByID implements payroll.PayslipRepository.
func (r *payslipRepository) GetRunByID(ctx context.Context, id string, companyID string) (payroll.PayslipRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, date_from, date_to, state, created_at, updated_at
		FROM payslip_runs
		WHERE id = $1
		  AND company_id = $2
	`

	var run payroll.PayslipRun
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&run.ID, &run.CompanyID, &run.Name, &run.DateFrom, &run.DateTo, &run.State,
		&run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayslipRun{}, payroll.ErrPayslipRunNotFound
		}
		return payroll.PayslipRun{}, fmt.Errorf("failed to get payslip run: %w", err)
	}

	return run, nil
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}
