package report

import "errors"

var (
	ErrNoPayslips         = errors.New("no computed payslips for this export")
	ErrMissingNationalID  = errors.New("employee has no national ID")
	ErrMissingBankAccount = errors.New("employee has no bank account")
)
