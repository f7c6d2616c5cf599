package payroll

import "errors"

var (
	ErrPayslipNotFound        = errors.New("payslip not found")
	ErrPayslipRunNotFound     = errors.New("payslip run not found")
	ErrWorkEntryTypeNotFound  = errors.New("work entry type not found")
	ErrPayslipAlreadyPaid     = errors.New("payslip already paid, cannot recompute")
	ErrNoActiveContract       = errors.New("employee has no contract covering the period")
	ErrInvalidPeriod          = errors.New("invalid payslip period")
	ErrRunNotComputed         = errors.New("payslip run has no computed payslips")
	ErrMissingEmployerNumbers = errors.New("company IPS or MTESS employer number is not configured")
)
