package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
	"github.com/nominapy/payroll-backend-go/internal/pkg/worktime"
	"github.com/nominapy/payroll-backend-go/internal/service/file"
)

type RequestServiceImpl struct {
	db *database.DB
	leave.RequestRepository
	leave.AllocationRepository
	leave.LeaveTypeRepository
	fileService file.FileService
	now         func() time.Time
}

func NewRequestService(
	db *database.DB,
	requestRepo leave.RequestRepository,
	allocationRepo leave.AllocationRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	fileService file.FileService,
) leave.RequestService {
	return &RequestServiceImpl{
		db:                   db,
		RequestRepository:    requestRepo,
		AllocationRepository: allocationRepo,
		LeaveTypeRepository:  leaveTypeRepo,
		fileService:          fileService,
		now:                  time.Now,
	}
}

// Submit implements leave.RequestService.
func (s *RequestServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID, err = employeeIDFromContext(ctx)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
	}

	dateFrom, _ := time.Parse("2006-01-02", req.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", req.DateTo)

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	overlap, err := s.RequestRepository.HasOverlapping(ctx, employeeID, dateFrom, dateTo, companyID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}
	if overlap {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	days := numberOfDays(dateFrom, dateTo, req.RequestUnitHours, req.HourFrom, req.HourTo)

	if leaveType.RequiresAllocation && !leaveType.Unlimited {
		available, err := s.availableDays(ctx, employeeID, leaveType.ID, dateFrom, companyID)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		if days > available {
			return leave.LeaveResponse{}, leave.ErrInsufficientBalance
		}
	}

	attachmentURL := req.AttachmentURL
	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadLeaveAttachment(ctx, employeeID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		attachmentURL = &url
	}

	state := leave.StateConfirm
	if leaveType.ValidationType == leave.ValidationNone {
		state = leave.StateValidate
	}

	created, err := s.RequestRepository.Create(ctx, leave.Request{
		EmployeeID:            employeeID,
		CompanyID:             companyID,
		LeaveTypeID:           leaveType.ID,
		DateFrom:              dateFrom,
		DateTo:                dateTo,
		RequestUnitHours:      req.RequestUnitHours,
		HourFrom:              req.HourFrom,
		HourTo:                req.HourTo,
		NumberOfDays:          days,
		State:                 state,
		ReplacementEmployeeID: req.ReplacementEmployeeID,
		Reason:                req.Reason,
		AttachmentURL:         attachmentURL,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToLeaveResponse(created), nil
}

// numberOfDays converts the request range into payable days. Hourly requests
// count the hour span as a fraction of an eight hour day.
func numberOfDays(from, to time.Time, unitHours bool, hourFrom, hourTo *float64) float64 {
	if unitHours && hourFrom != nil && hourTo != nil {
		return (*hourTo - *hourFrom) / 8.0
	}
	return float64(worktime.CalendarDaysBetween(from, to, time.UTC))
}

// availableDays sums the balances of validated allocations of the type whose
// period covers the requested start date.
func (s *RequestServiceImpl) availableDays(ctx context.Context, employeeID, leaveTypeID string, asOf time.Time, companyID string) (float64, error) {
	allocations, err := s.AllocationRepository.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list allocations: %w", err)
	}

	available := 0.0
	for _, a := range allocations {
		if a.LeaveTypeID != leaveTypeID || a.State != leave.StateValidate {
			continue
		}
		if asOf.Before(a.DateFrom) || asOf.After(a.DateTo) {
			continue
		}
		available += a.NumberOfDays - a.LeavesTaken - a.LiquidatedDays
	}
	if available < 0 {
		return 0, nil
	}
	return available, nil
}

// Approve implements leave.RequestService.
func (s *RequestServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	req, err := s.RequestRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	switch req.State {
	case leave.StateConfirm, leave.StateValidate1:
	default:
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	// Double validation goes through an intermediate step.
	if req.State == leave.StateConfirm && leaveType.ValidationType == leave.ValidationBoth {
		req.State = leave.StateValidate1
	} else {
		req.State = leave.StateValidate
	}

	if err := s.RequestRepository.Update(ctx, req); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return leave.ToLeaveResponse(req), nil
}

// Refuse implements leave.RequestService.
func (s *RequestServiceImpl) Refuse(ctx context.Context, id string) (leave.LeaveResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	req, err := s.RequestRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	switch req.State {
	case leave.StateRefuse, leave.StateCancel:
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	req.State = leave.StateRefuse
	if err := s.RequestRepository.Update(ctx, req); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return leave.ToLeaveResponse(req), nil
}

// History implements leave.RequestService.
func (s *RequestServiceImpl) History(ctx context.Context, filter leave.HistoryFilter) (leave.ListLeaveResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	if filter.EmployeeID == "" {
		filter.EmployeeID, err = employeeIDFromContext(ctx)
		if err != nil {
			return leave.ListLeaveResponse{}, err
		}
	}

	requests, total, err := s.RequestRepository.List(ctx, filter, companyID)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	resp := leave.ListLeaveResponse{
		Leaves: make([]leave.LeaveResponse, 0, len(requests)),
		Total:  total,
	}
	for _, r := range requests {
		resp.Leaves = append(resp.Leaves, leave.ToLeaveResponse(r))
	}
	return resp, nil
}

// Balance implements leave.RequestService.
func (s *RequestServiceImpl) Balance(ctx context.Context, employeeID string) ([]leave.BalanceResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if employeeID == "" {
		employeeID, err = employeeIDFromContext(ctx)
		if err != nil {
			return nil, err
		}
	}

	types, err := s.LeaveTypeRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	allocations, err := s.AllocationRepository.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := make([]leave.BalanceResponse, 0, len(types))
	for _, lt := range types {
		balance := leave.Balance{
			LeaveTypeID:   lt.ID,
			LeaveTypeName: lt.Name,
			Unlimited:     lt.Unlimited || !lt.RequiresAllocation,
		}
		if !balance.Unlimited {
			for _, a := range allocations {
				if a.LeaveTypeID != lt.ID || a.State != leave.StateValidate {
					continue
				}
				if now.Before(a.DateFrom) || now.After(a.DateTo) {
					continue
				}
				balance.MaxLeaves += a.NumberOfDays - a.LiquidatedDays
				balance.LeavesTaken += a.LeavesTaken
			}
			balance.VirtualRemaining = balance.MaxLeaves - balance.LeavesTaken
			if balance.VirtualRemaining < 0 {
				balance.VirtualRemaining = 0
			}
		}
		resp = append(resp, leave.ToBalanceResponse(balance))
	}
	return resp, nil
}
