package payroll

import "context"

type PayrollService interface {
	// ComputeSheet returns one line per employee, all active ones when no codes are given
	ComputeSheet(ctx context.Context, req ComputeSheetRequest) (SheetResponse, error)
	ComputeLine(ctx context.Context, req LineRequest) (LineResponse, error)

	GetEntry(ctx context.Context, req LineRequest) (EntryResponse, error)
	UpsertEntry(ctx context.Context, req UpsertEntryRequest) (EntryResponse, error)

	// BulkUpsertEntries applies every entry or none
	BulkUpsertEntries(ctx context.Context, req BulkUpsertRequest) ([]EntryResponse, error)

	MarkPaid(ctx context.Context, req MarkPaidRequest) (PaymentStatusResponse, error)
	MarkUnpaid(ctx context.Context, req MarkUnpaidRequest) (PaymentStatusResponse, error)

	// SetPaymentStatus computes the month's line when marking paid
	SetPaymentStatus(ctx context.Context, req PaymentStatusUpsert) (PaymentStatusResponse, error)
	TotalPaid(ctx context.Context, month string) (TotalPaidResponse, error)
	ListPaymentStatuses(ctx context.Context, month string) ([]PaymentStatusResponse, error)
}
