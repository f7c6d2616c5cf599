package company

import "time"

type Company struct {
	ID                     string
	Name                   string
	RUC                    *string
	Address                *string
	Timezone               string
	IPSEmployerNumber      *string
	MTESSEmployerNumber    *string
	LateThresholdMinutes   int
	LiquidationLeaveTypeID *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
