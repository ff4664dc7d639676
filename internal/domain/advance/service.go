package advance

import "context"

type AdvanceService interface {
	RecordAdvance(ctx context.Context, req RecordAdvanceRequest) (AdvanceResponse, error)
	ListAdvances(ctx context.Context, filter AdvanceFilter) ([]AdvanceResponse, error)
	DeleteAdvance(ctx context.Context, id int64) error

	// SetDeduction replaces the month's deduction for the employee
	SetDeduction(ctx context.Context, req SetDeductionRequest) (DeductionResponse, error)
	ListDeductions(ctx context.Context, employeeCode string) ([]DeductionResponse, error)

	Outstanding(ctx context.Context, employeeCode string, asOfMonth string) (Balance, error)
}
