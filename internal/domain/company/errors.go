package company

import "errors"

var (
	ErrCompanyNotFound          = errors.New("company not found")
	ErrMissingIPSNumber         = errors.New("company IPS employer number is not configured")
	ErrMissingMTESSNumber       = errors.New("company MTESS employer number is not configured")
	ErrMissingLiquidationPolicy = errors.New("company has no liquidation leave type configured")
	ErrInvalidLateThreshold     = errors.New("late threshold must be zero or positive")
)
