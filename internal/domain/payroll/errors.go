package payroll

import "errors"

var (
	ErrUnknownEmployee       = errors.New("employee master profile not found")
	ErrInvalidWindow         = errors.New("invalid payroll window")
	ErrEntryNotFound         = errors.New("payroll sheet entry not found")
	ErrPaymentStatusNotFound = errors.New("payroll payment status not found")
)
