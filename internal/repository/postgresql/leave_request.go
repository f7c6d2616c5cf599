package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

const leaveRequestColumns = `lr.id, lr.employee_id, lr.company_id, lr.leave_type_id,
		   lr.date_from, lr.date_to, lr.request_unit_hours, lr.hour_from, lr.hour_to,
		   lr.number_of_days, lr.state, lr.replacement_employee_id, lr.reason,
		   lr.attachment_url, lr.created_at, lr.updated_at`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveTypeID,
		&lr.DateFrom, &lr.DateTo, &lr.RequestUnitHours, &lr.HourFrom, &lr.HourTo,
		&lr.NumberOfDays, &lr.State, &lr.ReplacementEmployeeID, &lr.Reason,
		&lr.AttachmentURL, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, lr leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, company_id, leave_type_id, date_from, date_to,
			request_unit_hours, hour_from, hour_to, number_of_days, state,
			replacement_employee_id, reason, attachment_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lr.EmployeeID,
		lr.CompanyID,
		lr.LeaveTypeID,
		lr.DateFrom,
		lr.DateTo,
		lr.RequestUnitHours,
		lr.HourFrom,
		lr.HourTo,
		lr.NumberOfDays,
		lr.State,
		lr.ReplacementEmployeeID,
		lr.Reason,
		lr.AttachmentURL,
	).Scan(&lr.ID, &lr.CreatedAt, &lr.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return lr, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string, companyID string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1
		  AND lr.company_id = $2
	`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// Update implements leave.RequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, lr leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET state = $1,
			number_of_days = $2,
			attachment_url = $3,
			updated_at = NOW()
		WHERE id = $4
		  AND company_id = $5
	`

	tag, err := q.Exec(ctx, query, lr.State, lr.NumberOfDays, lr.AttachmentURL, lr.ID, lr.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// ListValidatedOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepository) ListValidatedOverlapping(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, lt.name, wet.code
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		LEFT JOIN work_entry_types wet ON wet.id = lt.work_entry_type_id
		WHERE lr.employee_id = $1
		  AND lr.company_id = $2
		  AND lr.state = 'validate'
		  AND lr.date_from <= $4
		  AND lr.date_to >= $3
		ORDER BY lr.date_from
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list validated leaves: %w", err)
	}
	defer rows.Close()

	var result []leave.Request
	for rows.Next() {
		var lr leave.Request
		var typeName *string
		var typeCode *string
		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveTypeID,
			&lr.DateFrom, &lr.DateTo, &lr.RequestUnitHours, &lr.HourFrom, &lr.HourTo,
			&lr.NumberOfDays, &lr.State, &lr.ReplacementEmployeeID, &lr.Reason,
			&lr.AttachmentURL, &lr.CreatedAt, &lr.UpdatedAt,
			&typeName, &typeCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		lr.LeaveTypeName = typeName
		lr.WorkEntryTypeCode = typeCode
		result = append(result, lr)
	}

	return result, rows.Err()
}

// HasOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepository) HasOverlapping(ctx context.Context, employeeID string, from, to time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND company_id = $2
			  AND state NOT IN ('refuse', 'cancel')
			  AND date_from <= $4
			  AND date_to >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}

	return exists, nil
}

// TakenDays implements leave.RequestRepository.
func (r *leaveRequestRepository) TakenDays(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time, companyID string) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(number_of_days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND company_id = $3
		  AND state = 'validate'
		  AND date_from >= $4
		  AND date_from <= $5
	`

	var taken float64
	if err := q.QueryRow(ctx, query, employeeID, leaveTypeID, companyID, from, to).Scan(&taken); err != nil {
		return 0, fmt.Errorf("failed to sum taken days: %w", err)
	}

	return taken, nil
}

// List implements leave.RequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.HistoryFilter, companyID string) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"lr.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name || ' ' || e.last_name ILIKE $%d OR lt.name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.State != "" {
		conditions = append(conditions, fmt.Sprintf("lr.state = $%d", argIdx))
		args = append(args, filter.State)
		argIdx++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("lr.date_to >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("lr.date_from <= $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	query := fmt.Sprintf(`
		SELECT `+leaveRequestColumns+`,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   lt.name AS leave_type_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var result []leave.Request
	for rows.Next() {
		var lr leave.Request
		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveTypeID,
			&lr.DateFrom, &lr.DateTo, &lr.RequestUnitHours, &lr.HourFrom, &lr.HourTo,
			&lr.NumberOfDays, &lr.State, &lr.ReplacementEmployeeID, &lr.Reason,
			&lr.AttachmentURL, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.EmployeeName, &lr.LeaveTypeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		result = append(result, lr)
	}

	return result, total, rows.Err()
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}
