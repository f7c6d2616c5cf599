package company

import (
	"context"

	"github.com/nominapy/payroll-backend-go/internal/domain/company"
	"github.com/nominapy/payroll-backend-go/internal/domain/leave"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	leave.LeaveTypeRepository
}

func NewCompanyService(companyRepo company.CompanyRepository, leaveTypeRepo leave.LeaveTypeRepository) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository:   companyRepo,
		LeaveTypeRepository: leaveTypeRepo,
	}
}

// GetCompany implements company.CompanyService.
func (s *CompanyServiceImpl) GetCompany(ctx context.Context, id string) (company.CompanyResponse, error) {
	c, err := s.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.ToCompanyResponse(c), nil
}

// UpdatePayrollSettings implements company.CompanyService.
func (s *CompanyServiceImpl) UpdatePayrollSettings(ctx context.Context, id string, req company.UpdatePayrollSettingsRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	c, err := s.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if req.IPSEmployerNumber != nil {
		c.IPSEmployerNumber = req.IPSEmployerNumber
	}
	if req.MTESSEmployerNumber != nil {
		c.MTESSEmployerNumber = req.MTESSEmployerNumber
	}
	if req.LateThresholdMinutes != nil {
		c.LateThresholdMinutes = *req.LateThresholdMinutes
	}
	if req.LiquidationLeaveTypeID != nil {
		// The policy must point at an existing leave type of the company.
		if _, err := s.LeaveTypeRepository.GetByID(ctx, *req.LiquidationLeaveTypeID, id); err != nil {
			return company.CompanyResponse{}, err
		}
		c.LiquidationLeaveTypeID = req.LiquidationLeaveTypeID
	}

	if err := s.CompanyRepository.Update(ctx, c); err != nil {
		return company.CompanyResponse{}, err
	}

	return company.ToCompanyResponse(c), nil
}
