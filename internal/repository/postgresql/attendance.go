package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/attendance"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `id, employee_id, company_id, check_in, check_out, is_guard,
		   overtime_status, overtime_hours, validated_overtime_hours,
		   late_status, scheduled_check_in, late_minutes, is_late, confirmed_late_minutes,
		   created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.CheckIn, &a.CheckOut, &a.IsGuard,
		&a.OvertimeStatus, &a.OvertimeHours, &a.ValidatedOvertimeHours,
		&a.LateStatus, &a.ScheduledCheckIn, &a.LateMinutes, &a.IsLate, &a.ConfirmedLateMinutes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, company_id, check_in, check_out, is_guard,
			overtime_status, overtime_hours, validated_overtime_hours,
			late_status, scheduled_check_in, late_minutes, is_late, confirmed_late_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID,
		a.CompanyID,
		a.CheckIn,
		a.CheckOut,
		a.IsGuard,
		a.OvertimeStatus,
		a.OvertimeHours,
		a.ValidatedOvertimeHours,
		a.LateStatus,
		a.ScheduledCheckIn,
		a.LateMinutes,
		a.IsLate,
		a.ConfirmedLateMinutes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE id = $1
		  AND company_id = $2
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND company_id = $2
		  AND check_out IS NULL
		ORDER BY check_in DESC
		LIMIT 1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1,
			is_guard = $2,
			overtime_status = $3,
			overtime_hours = $4,
			validated_overtime_hours = $5,
			late_status = $6,
			scheduled_check_in = $7,
			late_minutes = $8,
			is_late = $9,
			confirmed_late_minutes = $10,
			updated_at = NOW()
		WHERE id = $11
		  AND company_id = $12
	`

	tag, err := q.Exec(ctx, query,
		a.CheckOut,
		a.IsGuard,
		a.OvertimeStatus,
		a.OvertimeHours,
		a.ValidatedOvertimeHours,
		a.LateStatus,
		a.ScheduledCheckIn,
		a.LateMinutes,
		a.IsLate,
		a.ConfirmedLateMinutes,
		a.ID,
		a.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListClosedBetween implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListClosedBetween(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND company_id = $2
		  AND check_out IS NOT NULL
		  AND check_in >= $3
		  AND check_in <= $4
		ORDER BY check_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.check_in >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.check_in <= $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.LateStatus != "" {
		conditions = append(conditions, fmt.Sprintf("a.late_status = $%d", argIdx))
		args = append(args, filter.LateStatus)
		argIdx++
	}
	if filter.OvertimeStatus != "" {
		conditions = append(conditions, fmt.Sprintf("a.overtime_status = $%d", argIdx))
		args = append(args, filter.OvertimeStatus)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
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
		SELECT a.id, a.employee_id, a.company_id, a.check_in, a.check_out, a.is_guard,
			   a.overtime_status, a.overtime_hours, a.validated_overtime_hours,
			   a.late_status, a.scheduled_check_in, a.late_minutes, a.is_late, a.confirmed_late_minutes,
			   a.created_at, a.updated_at,
			   e.first_name || ' ' || e.last_name AS employee_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.check_in DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.CompanyID, &a.CheckIn, &a.CheckOut, &a.IsGuard,
			&a.OvertimeStatus, &a.OvertimeHours, &a.ValidatedOvertimeHours,
			&a.LateStatus, &a.ScheduledCheckIn, &a.LateMinutes, &a.IsLate, &a.ConfirmedLateMinutes,
			&a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, a)
	}

	return result, total, rows.Err()
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
