package leave

import (
	"context"
	"testing"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAllocationRepo struct {
	leave.AllocationRepository
	alloc leave.Allocation
}

func (f *fakeAllocationRepo) GetByID(_ context.Context, _ string, _ string) (leave.Allocation, error) {
	return f.alloc, nil
}

func (f *fakeAllocationRepo) Update(_ context.Context, a leave.Allocation) error {
	f.alloc = a
	return nil
}

type fakeRequestRepo struct {
	leave.RequestRepository
	created []leave.Request
}

func (f *fakeRequestRepo) Create(_ context.Context, r leave.Request) (leave.Request, error) {
	r.ID = "req-1"
	f.created = append(f.created, r)
	return r, nil
}

type fakeCompanyRepo struct {
	company.CompanyRepository
	comp company.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, _ string) (company.Company, error) {
	return f.comp, nil
}

func liquidationService() (*AllocationServiceImpl, *fakeAllocationRepo, *fakeRequestRepo) {
	name := "Juana Sosa"
	liquidationType := "lt-liquidation"

	allocRepo := &fakeAllocationRepo{alloc: leave.Allocation{
		ID:              "alloc-1",
		EmployeeID:      "emp-1",
		CompanyID:       "co-1",
		LeaveTypeID:     "lt-vacation",
		NumberOfDays:    18,
		LeavesTaken:     5,
		LiquidatedDays:  6,
		LiquidationDate: time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		State:           leave.StateValidate,
		EmployeeName:    &name,
	}}
	reqRepo := &fakeRequestRepo{}

	svc := &AllocationServiceImpl{
		AllocationRepository: allocRepo,
		RequestRepository:    reqRepo,
		CompanyRepository: &fakeCompanyRepo{comp: company.Company{
			ID:                     "co-1",
			LiquidationLeaveTypeID: &liquidationType,
		}},
		now: func() time.Time {
			return time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)
		},
	}
	return svc, allocRepo, reqRepo
}

func TestLiquidateConsumesBalanceOnce(t *testing.T) {
	svc, allocRepo, reqRepo := liquidationService()
	ctx := context.Background()

	created, err := svc.liquidateOne(ctx, "alloc-1", "co-1")
	require.NoError(t, err)

	// 18 allocated minus 5 taken minus 6 already liquidated leaves 7 days.
	assert.InDelta(t, 7.0, created.NumberOfDays, 1e-9)
	assert.Equal(t, leave.StateValidate, created.State)
	assert.Equal(t, "lt-liquidation", created.LeaveTypeID)
	assert.InDelta(t, 13.0, allocRepo.alloc.LiquidatedDays, 1e-9)

	// The balance is gone now; a second liquidation must refuse.
	_, err = svc.liquidateOne(ctx, "alloc-1", "co-1")
	assert.ErrorIs(t, err, leave.ErrNothingToLiquidate)
	assert.Len(t, reqRepo.created, 1)
}

func TestLiquidateWithoutLiquidationTypeNamesEmployee(t *testing.T) {
	svc, _, _ := liquidationService()
	svc.CompanyRepository = &fakeCompanyRepo{comp: company.Company{ID: "co-1"}}

	_, err := svc.liquidateOne(context.Background(), "alloc-1", "co-1")
	require.ErrorIs(t, err, leave.ErrNoLiquidationLeaveType)
	assert.Contains(t, err.Error(), "Juana Sosa")
}
