package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

// GetByID implements company.CompanyRepository.
func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, ruc, address, timezone, ips_employer_number, mtess_employer_number,
			   late_threshold_minutes, liquidation_leave_type_id, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.RUC, &c.Address, &c.Timezone, &c.IPSEmployerNumber, &c.MTESSEmployerNumber,
		&c.LateThresholdMinutes, &c.LiquidationLeaveTypeID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}

// Update implements company.CompanyRepository.
func (r *companyRepository) Update(ctx context.Context, c company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET ips_employer_number = $1,
			mtess_employer_number = $2,
			late_threshold_minutes = $3,
			liquidation_leave_type_id = $4,
			updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		c.IPSEmployerNumber,
		c.MTESSEmployerNumber,
		c.LateThresholdMinutes,
		c.LiquidationLeaveTypeID,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}
