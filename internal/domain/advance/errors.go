package advance

import "errors"

var (
	ErrAdvanceNotFound   = errors.New("advance not found")
	ErrDeductionNotFound = errors.New("advance deduction not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
)
