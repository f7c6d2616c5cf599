package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrContractNotFound  = errors.New("no active contract found")
	ErrMissingNationalID = errors.New("employee national ID is not set")
	ErrEmployeeInactive  = errors.New("employee is inactive")
	ErrCodeAlreadyExists = errors.New("employee code already exists")
)
