package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/payroll"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type workEntryTypeRepository struct {
	db *database.DB
}

// GetByCode implements payroll.WorkEntryTypeRepository.
func (r *workEntryTypeRepository) GetByCode(ctx context.Context, code string, companyID string) (payroll.WorkEntryType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name, category, sequence, is_leave, round_days,
			   created_at, updated_at
		FROM work_entry_types
		WHERE code = $1
		  AND company_id = $2
	`

	var t payroll.WorkEntryType
	err := q.QueryRow(ctx, query, code, companyID).Scan(
		&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.Category, &t.Sequence, &t.IsLeave, &t.RoundDays,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.WorkEntryType{}, payroll.ErrWorkEntryTypeNotFound
		}
		return payroll.WorkEntryType{}, fmt.Errorf("failed to get work entry type: %w", err)
	}

	return t, nil
}

// ListByCompany implements payroll.WorkEntryTypeRepository.
func (r *workEntryTypeRepository) ListByCompany(ctx context.Context, companyID string) ([]payroll.WorkEntryType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name, category, sequence, is_leave, round_days,
			   created_at, updated_at
		FROM work_entry_types
		WHERE company_id = $1
		ORDER BY sequence
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work entry types: %w", err)
	}
	defer rows.Close()

	var result []payroll.WorkEntryType
	for rows.Next() {
		var t payroll.WorkEntryType
		err := rows.Scan(
			&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.Category, &t.Sequence, &t.IsLeave, &t.RoundDays,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work entry type: %w", err)
		}
		result = append(result, t)
	}

	return result, rows.Err()
}

func NewWorkEntryTypeRepository(db *database.DB) payroll.WorkEntryTypeRepository {
	return &workEntryTypeRepository{db: db}
}

type workEntryRepository struct {
	db *database.DB
}

// Create implements payroll.WorkEntryRepository.
func (r *workEntryRepository) Create(ctx context.Context, entry payroll.WorkEntry) (payroll.WorkEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_entries (
			employee_id, contract_id, company_id, work_entry_type_id,
			date_start, date_stop, state
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.ContractID,
		entry.CompanyID,
		entry.WorkEntryTypeID,
		entry.DateStart,
		entry.DateStop,
		entry.State,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return payroll.WorkEntry{}, fmt.Errorf("failed to create work entry: %w", err)
	}

	return entry, nil
}

// ListOverlapping implements payroll.WorkEntryRepository.
func (r *workEntryRepository) ListOverlapping(ctx context.Context, contractID string, from, to time.Time, companyID string) ([]payroll.WorkEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT we.id, we.employee_id, we.contract_id, we.company_id, we.work_entry_type_id,
			   we.date_start, we.date_stop, we.state, we.created_at, we.updated_at,
			   wet.code, wet.category, wet.is_leave
		FROM work_entries we
		JOIN work_entry_types wet ON wet.id = we.work_entry_type_id
		WHERE we.contract_id = $1
		  AND we.company_id = $2
		  AND we.state = 'validated'
		  AND we.date_start < $4
		  AND we.date_stop > $3
		ORDER BY we.date_start
	`

	rows, err := q.Query(ctx, query, contractID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list work entries: %w", err)
	}
	defer rows.Close()

	var result []payroll.WorkEntry
	for rows.Next() {
		var e payroll.WorkEntry
		err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.ContractID, &e.CompanyID, &e.WorkEntryTypeID,
			&e.DateStart, &e.DateStop, &e.State, &e.CreatedAt, &e.UpdatedAt,
			&e.TypeCode, &e.TypeCategory, &e.TypeIsLeave,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work entry: %w", err)
		}
		result = append(result, e)
	}

	return result, rows.Err()
}

// DeleteByContractAndRange implements payroll.WorkEntryRepository.
func (r *workEntryRepository) DeleteByContractAndRange(ctx context.Context, contractID string, from, to time.Time, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM work_entries
		WHERE contract_id = $1
		  AND company_id = $2
		  AND date_start >= $3
		  AND date_stop <= $4
	`

	if _, err := q.Exec(ctx, query, contractID, companyID, from, to); err != nil {
		return fmt.Errorf("failed to delete work entries: %w", err)
	}

	return nil
}

func NewWorkEntryRepository(db *database.DB) payroll.WorkEntryRepository {
	return &workEntryRepository{db: db}
}
