package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

const leaveTypeColumns = `lt.id, lt.company_id, lt.name, lt.work_entry_type_id,
		   lt.requires_allocation, lt.unlimited, lt.validation_type,
		   lt.created_at, lt.updated_at, wet.code`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var t leave.LeaveType
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.WorkEntryTypeID,
		&t.RequiresAllocation, &t.Unlimited, &t.ValidationType,
		&t.CreatedAt, &t.UpdatedAt, &t.WorkEntryTypeCode,
	)
	return t, err
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types lt
		LEFT JOIN work_entry_types wet ON wet.id = lt.work_entry_type_id
		WHERE lt.id = $1
		  AND lt.company_id = $2
	`

	t, err := scanLeaveType(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return t, nil
}

// ListByCompany implements leave.LeaveTypeRepository.
func (r *leaveTypeRepository) ListByCompany(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types lt
		LEFT JOIN work_entry_types wet ON wet.id = lt.work_entry_type_id
		WHERE lt.company_id = $1
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var result []leave.LeaveType
	for rows.Next() {
		t, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		result = append(result, t)
	}

	return result, rows.Err()
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}
