package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/schedule"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type calendarRepository struct {
	db *database.DB
}

// GetByID implements schedule.CalendarRepository.
func (r *calendarRepository) GetByID(ctx context.Context, id string, companyID string) (schedule.Calendar, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, timezone, hours_per_day, created_at, updated_at
		FROM calendars
		WHERE id = $1
		  AND company_id = $2
	`

	var c schedule.Calendar
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Timezone, &c.HoursPerDay, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Calendar{}, schedule.ErrCalendarNotFound
		}
		return schedule.Calendar{}, fmt.Errorf("failed to get calendar: %w", err)
	}

	linesQuery := `
		SELECT id, calendar_id, day_of_week, hour_from, hour_to, day_period
		FROM calendar_lines
		WHERE calendar_id = $1
		ORDER BY day_of_week, hour_from
	`

	rows, err := q.Query(ctx, linesQuery, id)
	if err != nil {
		return schedule.Calendar{}, fmt.Errorf("failed to get calendar lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line schedule.CalendarLine
		err := rows.Scan(&line.ID, &line.CalendarID, &line.DayOfWeek, &line.HourFrom, &line.HourTo, &line.DayPeriod)
		if err != nil {
			return schedule.Calendar{}, fmt.Errorf("failed to scan calendar line: %w", err)
		}
		c.Lines = append(c.Lines, line)
	}

	return c, rows.Err()
}

func NewCalendarRepository(db *database.DB) schedule.CalendarRepository {
	return &calendarRepository{db: db}
}
