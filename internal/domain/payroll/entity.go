package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Window is an inclusive (from, to) date range a payroll line is computed for.
type Window struct {
	From time.Time
	To   time.Time
}

func NewWindow(from, to time.Time) Window {
	return Window{From: dateOnly(from), To: dateOnly(to)}
}

func (w Window) Validate() error {
	if w.To.Before(w.From) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidWindow, w.To.Format(time.DateOnly), w.From.Format(time.DateOnly))
	}
	return nil
}

// Days is the window length counting both ends.
func (w Window) Days() int {
	return attendance.DaysInclusive(w.From, w.To)
}

// Month returns the YYYY-MM tag when the window lies inside one calendar month.
func (w Window) Month() (string, bool) {
	if w.From.Year() != w.To.Year() || w.From.Month() != w.To.Month() {
		return "", false
	}
	return w.From.Format("2006-01"), true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SheetEntry holds the operator's overrides and additions for one employee
// and window. Nil snapshot fields fall back to the master profile.
type SheetEntry struct {
	ID         int64
	EmployeeID int64
	FromDate   time.Time
	ToDate     time.Time

	PreDaysOverride     *decimal.Decimal
	CurDaysOverride     *decimal.Decimal
	LeaveEncashmentDays decimal.Decimal
	AllowOther          decimal.Decimal
	EOBI                decimal.Decimal
	Tax                 decimal.Decimal
	FineAdvExtra        decimal.Decimal
	OTRateOverride      decimal.Decimal
	OTBonusAmount       decimal.Decimal

	MobileNo          *string
	BankName          *string
	BankAccountNumber *string
	BankCash          *string
	Remarks           *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeCode string
}

// EmptyEntry is the implicit entry of a line nobody edited yet.
func EmptyEntry(employeeID int64, w Window) SheetEntry {
	return SheetEntry{
		EmployeeID:          employeeID,
		FromDate:            w.From,
		ToDate:              w.To,
		LeaveEncashmentDays: decimal.Zero,
		AllowOther:          decimal.Zero,
		EOBI:                decimal.Zero,
		Tax:                 decimal.Zero,
		FineAdvExtra:        decimal.Zero,
		OTRateOverride:      decimal.Zero,
		OTBonusAmount:       decimal.Zero,
	}
}

type PaymentStatusValue string

const (
	StatusPaid   PaymentStatusValue = "paid"
	StatusUnpaid PaymentStatusValue = "unpaid"
)

// PaymentStatus is the settlement row for (month, employee). NetPaySnapshot
// is set exactly when Status is paid and is never recomputed afterwards.
type PaymentStatus struct {
	ID             int64
	Month          string
	EmployeeID     int64
	Status         PaymentStatusValue
	NetPaySnapshot *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeCode string
	EmployeeName string
}

func Paid(employeeID int64, month string, netPay decimal.Decimal) PaymentStatus {
	snapshot := netPay.Round(2)
	return PaymentStatus{Month: month, EmployeeID: employeeID, Status: StatusPaid, NetPaySnapshot: &snapshot}
}

func Unpaid(employeeID int64, month string) PaymentStatus {
	return PaymentStatus{Month: month, EmployeeID: employeeID, Status: StatusUnpaid}
}
