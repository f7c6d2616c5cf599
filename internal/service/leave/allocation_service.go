package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
	"github.com/nominapy/payroll-backend-go/internal/repository/postgresql"
)

type AllocationServiceImpl struct {
	db *database.DB
	leave.AllocationRepository
	leave.RequestRepository
	leave.LeaveTypeRepository
	employee.EmployeeRepository
	company.CompanyRepository
	now func() time.Time
}

func NewAllocationService(
	db *database.DB,
	allocationRepo leave.AllocationRepository,
	requestRepo leave.RequestRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
) leave.AllocationService {
	return &AllocationServiceImpl{
		db:                   db,
		AllocationRepository: allocationRepo,
		RequestRepository:    requestRepo,
		LeaveTypeRepository:  leaveTypeRepo,
		EmployeeRepository:   employeeRepo,
		CompanyRepository:    companyRepo,
		now:                  time.Now,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// Generate implements leave.AllocationService.
func (s *AllocationServiceImpl) Generate(ctx context.Context, req leave.GenerateAllocationsRequest) (leave.GenerateResult, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return leave.GenerateResult{}, err
	}
	return s.GenerateForCompany(ctx, companyID, req.EmployeeIDs)
}

// GenerateForCompany runs the idempotent allocation pass for one company.
// The cron job calls it without request claims.
func (s *AllocationServiceImpl) GenerateForCompany(ctx context.Context, companyID string, employeeIDs []string) (leave.GenerateResult, error) {
	var employees []employee.Employee
	if len(employeeIDs) > 0 {
		for _, id := range employeeIDs {
			emp, err := s.EmployeeRepository.GetByID(ctx, id, companyID)
			if err != nil {
				return leave.GenerateResult{}, err
			}
			employees = append(employees, emp)
		}
	} else {
		var err error
		employees, err = s.EmployeeRepository.ListActive(ctx, companyID)
		if err != nil {
			return leave.GenerateResult{}, err
		}
	}

	types, err := s.LeaveTypeRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return leave.GenerateResult{}, err
	}

	now := s.now()
	var result leave.GenerateResult
	for _, lt := range types {
		if !lt.RequiresAllocation || lt.Unlimited {
			continue
		}
		for _, emp := range employees {
			created, err := s.generateOne(ctx, emp, lt, companyID, now)
			if err != nil {
				return result, err
			}
			if created {
				result.Created++
			} else {
				result.Skipped++
			}
		}
	}
	return result, nil
}

func (s *AllocationServiceImpl) generateOne(ctx context.Context, emp employee.Employee, lt leave.LeaveType, companyID string, now time.Time) (bool, error) {
	entitlement := EntitlementDays(emp.HireDate, now)
	if entitlement == 0 {
		return false, nil
	}

	from, to := AllocationPeriod(emp.HireDate, now)

	existing, err := s.AllocationRepository.GetForPeriod(ctx, emp.ID, lt.ID, from, companyID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	prev, err := s.AllocationRepository.GetForPeriod(ctx, emp.ID, lt.ID, from.AddDate(-1, 0, 0), companyID)
	if err != nil {
		return false, err
	}
	carry := CarryOver(prev)

	_, err = s.AllocationRepository.Create(ctx, leave.Allocation{
		EmployeeID:      emp.ID,
		CompanyID:       companyID,
		LeaveTypeID:     lt.ID,
		NumberOfDays:    entitlement + carry,
		CarriedOverDays: carry,
		DateFrom:        from,
		DateTo:          to,
		LiquidationDate: LiquidationDate(from),
		State:           leave.StateValidate,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// List implements leave.AllocationService.
func (s *AllocationServiceImpl) List(ctx context.Context) ([]leave.AllocationResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	allocations, err := s.AllocationRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]leave.AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		resp = append(resp, leave.ToAllocationResponse(a))
	}
	return resp, nil
}

// Liquidate implements leave.AllocationService.
func (s *AllocationServiceImpl) Liquidate(ctx context.Context, allocationID string) (leave.LeaveResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	var created leave.Request
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		var err error
		created, err = s.liquidateOne(txCtx, allocationID, companyID)
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.ToLeaveResponse(created), nil
}

// liquidateOne converts the untaken balance of one allocation into an
// auto-validated consecutive leave. Liquidation is an HR action, so the leave
// needs no further approval.
func (s *AllocationServiceImpl) liquidateOne(ctx context.Context, allocationID, companyID string) (leave.Request, error) {
	alloc, err := s.AllocationRepository.GetByID(ctx, allocationID, companyID)
	if err != nil {
		return leave.Request{}, err
	}

	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return leave.Request{}, err
	}
	if comp.LiquidationLeaveTypeID == nil || *comp.LiquidationLeaveTypeID == "" {
		if alloc.EmployeeName != nil && *alloc.EmployeeName != "" {
			return leave.Request{}, fmt.Errorf("%w: %s", leave.ErrNoLiquidationLeaveType, *alloc.EmployeeName)
		}
		return leave.Request{}, leave.ErrNoLiquidationLeaveType
	}

	available := alloc.AvailableToLiquidate()
	if available <= 0 {
		return leave.Request{}, leave.ErrNothingToLiquidate
	}

	days := int(available)
	if days < 1 {
		days = 1
	}

	start := LiquidationStart(s.now(), alloc.LiquidationDate)
	end := start.AddDate(0, 0, days-1)

	created, err := s.RequestRepository.Create(ctx, leave.Request{
		EmployeeID:   alloc.EmployeeID,
		CompanyID:    companyID,
		LeaveTypeID:  *comp.LiquidationLeaveTypeID,
		DateFrom:     start,
		DateTo:       end,
		NumberOfDays: float64(days),
		State:        leave.StateValidate,
	})
	if err != nil {
		return leave.Request{}, err
	}

	alloc.LiquidatedDays += float64(days)
	if err := s.AllocationRepository.Update(ctx, alloc); err != nil {
		return leave.Request{}, err
	}

	return created, nil
}

// LiquidateAll implements leave.AllocationService.
func (s *AllocationServiceImpl) LiquidateAll(ctx context.Context) (leave.BulkLiquidationResult, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return leave.BulkLiquidationResult{}, err
	}

	due, err := s.AllocationRepository.ListPendingLiquidation(ctx, s.now(), companyID)
	if err != nil {
		return leave.BulkLiquidationResult{}, err
	}

	var result leave.BulkLiquidationResult
	for _, alloc := range due {
		err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)
			_, err := s.liquidateOne(txCtx, alloc.ID, companyID)
			return err
		})
		if err != nil {
			result.Skipped++
			item := leave.BulkLiquidationError{
				AllocationID: alloc.ID,
				Message:      err.Error(),
			}
			if alloc.EmployeeName != nil {
				item.EmployeeName = *alloc.EmployeeName
			}
			slog.Warn("allocation liquidation failed",
				"allocation_id", alloc.ID, "error", err)
			result.Errors = append(result.Errors, item)
			continue
		}
		result.Liquidated++
	}
	return result, nil
}
