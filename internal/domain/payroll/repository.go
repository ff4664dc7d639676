package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PayrollRepository interface {
	// GetEntry returns ErrEntryNotFound when the line was never edited
	GetEntry(ctx context.Context, employeeID int64, from, to time.Time) (SheetEntry, error)
	ListEntries(ctx context.Context, from, to time.Time) ([]SheetEntry, error)

	// UpsertEntry inserts or replaces the (employee, from, to) entry
	UpsertEntry(ctx context.Context, entry SheetEntry) (SheetEntry, error)

	// UpsertPaymentStatus inserts or replaces the (month, employee) row
	UpsertPaymentStatus(ctx context.Context, status PaymentStatus) (PaymentStatus, error)
	GetPaymentStatus(ctx context.Context, employeeID int64, month string) (PaymentStatus, error)
	ListPaymentStatuses(ctx context.Context, month string) ([]PaymentStatus, error)

	// TotalPaid sums net_pay_snapshot over paid rows of the month
	TotalPaid(ctx context.Context, month string) (decimal.Decimal, error)
}
