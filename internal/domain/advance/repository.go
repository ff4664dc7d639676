package advance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type AdvanceRepository interface {
	CreateAdvance(ctx context.Context, a Advance) (Advance, error)
	GetAdvanceByID(ctx context.Context, id int64) (Advance, error)
	DeleteAdvance(ctx context.Context, id int64) error
	ListAdvances(ctx context.Context, employeeID int64, from, to *time.Time) ([]Advance, error)

	// UpsertDeduction inserts or replaces the (employee, month) row
	UpsertDeduction(ctx context.Context, d Deduction) (Deduction, error)
	GetDeduction(ctx context.Context, employeeID int64, month string) (Deduction, error)
	ListDeductions(ctx context.Context, employeeID int64) ([]Deduction, error)

	// SumAdvances totals advances dated on or before until
	SumAdvances(ctx context.Context, employeeID int64, until time.Time) (decimal.Decimal, error)

	// SumDeductions totals deductions for months up to and including month
	SumDeductions(ctx context.Context, employeeID int64, month string) (decimal.Decimal, error)
}
