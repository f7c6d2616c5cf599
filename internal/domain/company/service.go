package company

import "context"

// CompanyService exposes the payroll settings a company carries.
type CompanyService interface {
	GetCompany(ctx context.Context, id string) (CompanyResponse, error)
	UpdatePayrollSettings(ctx context.Context, id string, req UpdatePayrollSettingsRequest) (CompanyResponse, error)
}
