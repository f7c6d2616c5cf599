package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
)

// AllocationJobs wires the periodic leave-allocation pass into the scheduler.
type AllocationJobs struct {
	allocationSvc leave.AllocationService
	db            *database.DB
}

func NewAllocationJobs(allocationSvc leave.AllocationService, db *database.DB) *AllocationJobs {
	return &AllocationJobs{
		allocationSvc: allocationSvc,
		db:            db,
	}
}

func (j *AllocationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_leave_allocations", 1*time.Hour, j.GenerateAllocations)
}

// GenerateAllocations creates the current-period allocation for every active
// employee of every company. Generation is idempotent, so re-running after a
// missed window or a restart is safe.
func (j *AllocationJobs) GenerateAllocations(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting leave allocation generation job")

	rows, err := j.db.Pool.Query(ctx, `
		SELECT DISTINCT company_id FROM employees
		WHERE active = TRUE
	`)
	if err != nil {
		return fmt.Errorf("failed to get companies: %w", err)
	}
	defer rows.Close()

	var companyIDs []string
	for rows.Next() {
		var companyID string
		if err := rows.Scan(&companyID); err != nil {
			continue
		}
		companyIDs = append(companyIDs, companyID)
	}

	totalCreated := 0
	for _, companyID := range companyIDs {
		result, err := j.allocationSvc.GenerateForCompany(ctx, companyID, nil)
		if err != nil {
			slog.Error("Cron: Failed to generate allocations",
				"company_id", companyID, "error", err)
			continue
		}
		totalCreated += result.Created
	}

	slog.Info("Cron: Leave allocations generated", "created", totalCreated)
	return nil
}
