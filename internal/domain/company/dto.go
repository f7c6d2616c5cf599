package company

import (
	"github.com/nominapy/payroll-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	RUC                  *string `json:"ruc,omitempty"`
	Timezone             string  `json:"timezone"`
	IPSEmployerNumber    *string `json:"ips_employer_number,omitempty"`
	MTESSEmployerNumber  *string `json:"mtess_employer_number,omitempty"`
	LateThresholdMinutes int     `json:"late_threshold_minutes"`
}

type UpdatePayrollSettingsRequest struct {
	IPSEmployerNumber      *string `json:"ips_employer_number"`
	MTESSEmployerNumber    *string `json:"mtess_employer_number"`
	LateThresholdMinutes   *int    `json:"late_threshold_minutes"`
	LiquidationLeaveTypeID *string `json:"liquidation_leave_type_id"`
}

func (r *UpdatePayrollSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LateThresholdMinutes != nil && *r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_threshold_minutes",
			Message: "late_threshold_minutes must be zero or positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func ToCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		RUC:                  c.RUC,
		Timezone:             c.Timezone,
		IPSEmployerNumber:    c.IPSEmployerNumber,
		MTESSEmployerNumber:  c.MTESSEmployerNumber,
		LateThresholdMinutes: c.LateThresholdMinutes,
	}
}
